// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"text/template"

	cmdutil "k8s.io/kubectl/pkg/cmd/util"

	"github.com/yoctoalex/xcctl/pkg/config"
	"github.com/yoctoalex/xcctl/pkg/module"
	"github.com/yoctoalex/xcctl/pkg/object"
	"github.com/yoctoalex/xcctl/pkg/reconcile"
)

const (
	DefaultErrorExitCode = 1
	TimeoutErrorExitCode = 3
)

var errorMsgForType map[reflect.Type]string
var statusCodeForType map[reflect.Type]int

var templateFuncs = template.FuncMap{
	"flag": func(setting string) string {
		return "--" + strings.ReplaceAll(setting, "_", "-")
	},
}

//nolint:gochecknoinits
func init() {
	errorMsgForType = make(map[reflect.Type]string)
	errorMsgForType[reflect.TypeOf(config.MissingSettingError{})] = `
Provider setting {{.err.Setting}} is not configured.

Pass it with "{{.cmdNameBase}} {{flag .err.Setting}}=..." or set the
{{.err.EnvVar}} environment variable.
`

	errorMsgForType[reflect.TypeOf(object.MultiValidationError{})] = `
{{.err.Error}}
No object was changed. Fix the manifests listed above and try again.
`

	// The result document has already been written to stdout.
	errorMsgForType[reflect.TypeOf(module.FailedError{})] = ``

	// The API's own error document is the most useful message.
	errorMsgForType[reflect.TypeOf(reconcile.RemoteError{})] = `{{.err.Error}}`

	//nolint:lll
	errorMsgForType[reflect.TypeOf(reconcile.TimeoutError{})] = `
Timeout after {{printf "%d" .err.Attempts}} attempts {{.err.Interval}} apart waiting for {{.err.Identifier}} to become ready.

Use --wait-attempts and --wait-interval to extend the budget, or
--on-wait-exhausted=return-last to accept the last observed state.
`

	statusCodeForType = make(map[reflect.Type]int)
	statusCodeForType[reflect.TypeOf(reconcile.TimeoutError{})] = TimeoutErrorExitCode
}

// CheckErr looks up the appropriate error message and exit status for known
// errors. It will print the information to the provided io.Writer. If we
// don't know the error, it delegates to the error handling in cmdutil.
func CheckErr(w io.Writer, err error, cmdNameBase string) {
	if err == nil {
		return
	}
	errText, found := textForError(err, cmdNameBase)
	if found {
		exitStatus := findErrExitCode(err)
		if len(errText) > 0 {
			if !strings.HasSuffix(errText, "\n") {
				errText += "\n"
			}
			fmt.Fprint(w, errText)
		}
		os.Exit(exitStatus)
	}

	cmdutil.CheckErr(err)
}

// textForError looks up the error message based on the type of the error
// or of the first error in its chain that has a known type.
func textForError(baseErr error, cmdNameBase string) (string, bool) {
	knownErr, errType, found := findKnownErr(baseErr, errorMsgForType)
	if !found {
		return "", false
	}
	tmplText := errorMsgForType[errType]

	tmpl, err := template.New("errMsg").Funcs(templateFuncs).Parse(tmplText)
	if err != nil {
		// Just return false here instead of the error. It will just
		// mean a less informative error message and we rather show the
		// original error.
		return "", false
	}
	var b bytes.Buffer
	err = tmpl.Execute(&b, map[string]interface{}{
		"cmdNameBase": cmdNameBase,
		"err":         knownErr,
	})
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(b.String()), true
}

// findKnownErr walks the chain of err and returns the first error whose
// type is a key of table.
func findKnownErr[V any](err error, table map[reflect.Type]V) (error, reflect.Type, bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		errType, found := findErrType(err)
		if !found {
			continue
		}
		if _, found := table[errType]; found {
			return err, errType, true
		}
	}
	return nil, nil, false
}

// findErrType finds the type of the error. It returns the real type in the
// event the error is actually a pointer to a type.
func findErrType(err error) (reflect.Type, bool) {
	switch reflect.ValueOf(err).Kind() {
	case reflect.Ptr:
		// If the value of the interface is a pointer, we use the type
		// of the real value.
		return reflect.ValueOf(err).Elem().Type(), true
	case reflect.Struct:
		return reflect.TypeOf(err), true
	default:
		return nil, false
	}
}

// findErrExitCode looks up if there is a defined error code for the provided
// error type.
func findErrExitCode(err error) int {
	if _, errType, found := findKnownErr(err, statusCodeForType); found {
		return statusCodeForType[errType]
	}
	return DefaultErrorExitCode
}

// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package printer

import (
	"github.com/yoctoalex/xcctl/pkg/apply/event"
)

type Printer interface {
	Print(ch <-chan event.Event) error
}

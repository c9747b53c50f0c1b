// Copyright 2024 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package module_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/klog/v2"
)

func TestModule(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Module Suite")
}

var _ = BeforeSuite(func() {
	klog.SetOutput(GinkgoWriter)
})

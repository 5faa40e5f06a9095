package cmd

import (
	"testing"

	"ocictl/internal/config"
)

func TestServeCommand(t *testing.T) {
	if serveCmd.Use != "serve" {
		t.Errorf("Expected Use to be 'serve', got %s", serveCmd.Use)
	}

	if serveCmd.RunE == nil {
		t.Error("Expected RunE function to be set")
	}

	for _, flag := range []string{"transport", "host", "port", "debug", "compartment", "profile", "oci-config"} {
		if serveCmd.Flags().Lookup(flag) == nil {
			t.Errorf("Expected flag --%s to be registered", flag)
		}
	}
}

func TestApplyServeFlags(t *testing.T) {
	originalTransport := serveTransport
	originalPort := servePort
	originalCompartment := serveCompartment
	defer func() {
		serveTransport = originalTransport
		servePort = originalPort
		serveCompartment = originalCompartment
	}()

	serveTransport = "sse"
	servePort = 9000
	serveCompartment = "ocid1.compartment.oc1..flag"

	cfg := config.GetDefaultConfig()
	applyServeFlags(&cfg)

	if cfg.Server.Transport != "sse" {
		t.Errorf("Expected transport sse, got %s", cfg.Server.Transport)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.OCI.CompartmentID != "ocid1.compartment.oc1..flag" {
		t.Errorf("Expected compartment from flag, got %s", cfg.OCI.CompartmentID)
	}
}

func TestApplyServeFlags_EmptyFlagsKeepConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Server.Transport = "sse"
	cfg.Server.Port = 8443

	applyServeFlags(&cfg)

	if cfg.Server.Transport != "sse" {
		t.Errorf("Expected transport to be preserved, got %s", cfg.Server.Transport)
	}
	if cfg.Server.Port != 8443 {
		t.Errorf("Expected port to be preserved, got %d", cfg.Server.Port)
	}
}

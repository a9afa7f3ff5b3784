package config

import (
	"strings"
	"testing"
)

func TestValidateRegionKnown(t *testing.T) {
	for _, region := range []string{"us-east-1", "eu-central-1", "ap-southeast-2"} {
		if err := ValidateRegion(region); err != nil {
			t.Errorf("ValidateRegion(%q) failed: %v", region, err)
		}
	}
}

func TestValidateRegionUnknownSuggestsPrefix(t *testing.T) {
	err := ValidateRegion("us-east-7")
	if err == nil {
		t.Fatal("expected error for unknown region")
	}

	msg := err.Error()
	if !strings.Contains(msg, "us-east-1") {
		t.Errorf("expected us-east-1 in suggestions, got: %s", msg)
	}
	if strings.Contains(msg, "ap-") || strings.Contains(msg, "eu-") {
		t.Errorf("suggestions must be limited to the us- prefix, got: %s", msg)
	}
}

func TestValidateRegionUnknownPrefixFallsBack(t *testing.T) {
	err := ValidateRegion("zz-nowhere-1")
	if err == nil {
		t.Fatal("expected error for unknown region")
	}

	// With no shared prefix the full table is suggested.
	if !strings.Contains(err.Error(), "us-east-1") || !strings.Contains(err.Error(), "eu-west-1") {
		t.Errorf("expected full region list in error, got: %s", err.Error())
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIATEST")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg := Load()
	if cfg.AWS.AccessKey != "AKIATEST" {
		t.Errorf("AccessKey = %q", cfg.AWS.AccessKey)
	}
	if cfg.AWS.SecretKey != "secret" {
		t.Errorf("SecretKey = %q", cfg.AWS.SecretKey)
	}
	if cfg.AWS.Region != "eu-west-1" {
		t.Errorf("Region = %q", cfg.AWS.Region)
	}
}

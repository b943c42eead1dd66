package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
)

func TestFieldClassifyCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"field", "classify", "email"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "email")
	assert.Contains(t, buf.String(), "0.90")
}

func TestFieldClassifyCmd_SensitiveField(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	fieldService = &mockFieldService{
		classification: domain.Classification{Category: domain.CategoryUnknown, Sensitive: true},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"field", "classify", "password"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "never auto-filled")
}

func TestFieldClassifyCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"field", "classify", "--json", "email"})
	defer func() {
		rootCmd.SetArgs(nil)
		fieldJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"Category\"")
	assert.Contains(t, buf.String(), "\"Confidence\"")
}

func TestFieldEvidenceCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"field", "evidence", "email"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Evidence")
	assert.Contains(t, buf.String(), "a@b.com")
}

func TestFieldEvidenceCmd_NoEvidence(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	fieldService = &mockFieldService{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"field", "evidence", "obscure_field"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No evidence found")
}

func TestFieldFillCmd_ProposesValue(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"field", "fill", "email", "--label", "Email Address"})
	defer func() {
		rootCmd.SetArgs(nil)
		fieldLabel = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "a@b.com")
	assert.Contains(t, buf.String(), "local-hints")
}

func TestFieldFillCmd_SkippedField(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	fieldService = &mockFieldService{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"field", "fill", "password"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "skipped")
}

func TestFieldCmd_ServiceNotConfigured(t *testing.T) {
	oldService := fieldService
	fieldService = nil
	defer func() {
		fieldService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"field", "classify", "email"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "field service not configured")
}

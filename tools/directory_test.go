package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayiskander2406/vendorportal/tool"
)

func TestCreateVendor(t *testing.T) {
	dir := NewDirectory()

	v, err := dir.CreateVendor("Globex", "it@globex.example", "enterprise")
	require.NoError(t, err)
	assert.NotEmpty(t, v.Id)
	assert.Equal(t, "pending_activation", v.Status)

	_, err = dir.CreateVendor("globex", "other@globex.example", "standard")
	require.Error(t, err, "names are unique case-insensitively")

	_, err = dir.CreateVendor("NoMail", "not-an-email", "standard")
	assert.Error(t, err)

	_, err = dir.CreateVendor("BadTier", "x@y.example", "platinum")
	assert.Error(t, err)
}

func TestCreateVendorDefaultsTier(t *testing.T) {
	dir := NewDirectory()
	v, err := dir.CreateVendor("Initech", "it@initech.example", "")
	require.NoError(t, err)
	assert.Equal(t, "standard", v.Tier)
}

func TestIssueCredentialsRotates(t *testing.T) {
	dir := NewDirectory()
	v, err := dir.CreateVendor("Globex", "it@globex.example", "standard")
	require.NoError(t, err)

	first, err := dir.IssueCredentials(v.Id, "sandbox")
	require.NoError(t, err)
	second, err := dir.IssueCredentials(v.Id, "sandbox")
	require.NoError(t, err)
	assert.NotEqual(t, first.ClientSecret, second.ClientSecret)

	_, err = dir.IssueCredentials("vnd_missing", "sandbox")
	assert.Error(t, err)

	_, err = dir.IssueCredentials(v.Id, "production")
	assert.Error(t, err, "only non-production environments are allowed")
}

func TestConfigureSSOValidation(t *testing.T) {
	dir := NewDirectory()
	v, err := dir.CreateVendor("Globex", "it@globex.example", "standard")
	require.NoError(t, err)

	_, err = dir.ConfigureSSO(v.Id, "kerberos", "https://idp.example.com/meta")
	assert.Error(t, err)

	_, err = dir.ConfigureSSO(v.Id, "saml", "http://idp.example.com/meta")
	assert.Error(t, err, "metadata must be https")

	cfg, err := dir.ConfigureSSO(v.Id, "saml", "https://idp.example.com/meta")
	require.NoError(t, err)
	assert.Equal(t, "pending_verification", cfg.Status)
	assert.Contains(t, cfg.AcsURL, v.Id)
}

func TestQueryRosterFilter(t *testing.T) {
	dir := NewDirectory()
	seed, ok := dir.FindVendorByName("Acme Logistics")
	require.True(t, ok)

	all, err := dir.QueryRoster(seed.Id, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	admins, err := dir.QueryRoster(seed.Id, "admin")
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin", admins[0].Role)

	_, err = dir.QueryRoster("vnd_missing", "")
	assert.Error(t, err)
}

func TestSendTestMessageWebhookNeedsCredentials(t *testing.T) {
	dir := NewDirectory()
	v, err := dir.CreateVendor("Globex", "it@globex.example", "standard")
	require.NoError(t, err)

	_, err = dir.SendTestMessage(v.Id, "webhook", "ping")
	require.Error(t, err, "webhook requires credentials")

	_, err = dir.IssueCredentials(v.Id, "sandbox")
	require.NoError(t, err)

	rec, err := dir.SendTestMessage(v.Id, "webhook", "ping")
	require.NoError(t, err)
	assert.Equal(t, "delivered", rec.Status)

	// email needs no credentials
	rec, err = dir.SendTestMessage(v.Id, "email", "hello")
	require.NoError(t, err)
	assert.Equal(t, "email", rec.Channel)
}

func TestRegisterAllExposesEveryTool(t *testing.T) {
	registry := tool.NewRegistry()
	RegisterAll(registry, NewDirectory())

	assert.Equal(t, []string{
		"configure_sso",
		"create_vendor",
		"issue_sandbox_credentials",
		"query_roster",
		"send_test_message",
	}, registry.List())
}

func TestConfigureSSOToolShowsForm(t *testing.T) {
	dir := NewDirectory()
	v, err := dir.CreateVendor("Globex", "it@globex.example", "standard")
	require.NoError(t, err)

	inv := NewConfigureSSO(dir)
	args, _ := json.Marshal(ConfigureSSOInput{
		VendorId:    v.Id,
		Protocol:    "oidc",
		MetadataURL: "https://idp.example.com/.well-known",
	})

	res := inv.Invoke(context.Background(), string(args))
	require.True(t, res.Success)
	assert.Equal(t, "sso_config", res.ShowForm)
}

func TestCreateVendorToolNarratesFault(t *testing.T) {
	dir := NewDirectory()
	inv := NewCreateVendor(dir)

	res := inv.Invoke(context.Background(), `{"name":"","contact_email":"a@b.example"}`)
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "name is required")
}

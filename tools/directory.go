// Package tools implements the vendor onboarding operations the
// assistant can perform, backed by an in-memory directory.
package tools

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Vendor struct {
	Id           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	Tier         string    `json:"tier"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type Credentials struct {
	VendorId     string    `json:"vendor_id"`
	ClientId     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	Environment  string    `json:"environment"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type SSOConfig struct {
	VendorId    string `json:"vendor_id"`
	Protocol    string `json:"protocol"`
	MetadataURL string `json:"metadata_url"`
	AcsURL      string `json:"acs_url"`
	Status      string `json:"status"`
}

type RosterEntry struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Delivery struct {
	Id          string    `json:"id"`
	VendorId    string    `json:"vendor_id"`
	Channel     string    `json:"channel"`
	Body        string    `json:"body"`
	Status      string    `json:"status"`
	DeliveredAt time.Time `json:"delivered_at"`
}

var (
	validTiers    = map[string]bool{"standard": true, "premium": true, "enterprise": true}
	validEnvs     = map[string]bool{"sandbox": true, "staging": true}
	validProtos   = map[string]bool{"saml": true, "oidc": true}
	validChannels = map[string]bool{"email": true, "webhook": true}
)

// Directory is the assistant's view of the vendor platform. Everything
// lives in memory; seeded data makes a fresh process demoable.
type Directory struct {
	mu sync.RWMutex

	vendors     map[string]*Vendor
	credentials map[string]*Credentials
	sso         map[string]*SSOConfig
	rosters     map[string][]RosterEntry
	deliveries  []Delivery
}

func NewDirectory() *Directory {
	d := &Directory{
		vendors:     make(map[string]*Vendor),
		credentials: make(map[string]*Credentials),
		sso:         make(map[string]*SSOConfig),
		rosters:     make(map[string][]RosterEntry),
	}
	d.seed()
	return d
}

func (d *Directory) seed() {
	seedId := "vnd_" + uuid.NewString()
	d.vendors[seedId] = &Vendor{
		Id:           seedId,
		Name:         "Acme Logistics",
		ContactEmail: "ops@acme-logistics.example",
		Tier:         "premium",
		Status:       "active",
		CreatedAt:    time.Now().Add(-30 * 24 * time.Hour),
	}
	d.rosters[seedId] = []RosterEntry{
		{Id: "usr_" + uuid.NewString(), Name: "Dana Whitfield", Email: "dana@acme-logistics.example", Role: "admin"},
		{Id: "usr_" + uuid.NewString(), Name: "Omar Castellanos", Email: "omar@acme-logistics.example", Role: "developer"},
		{Id: "usr_" + uuid.NewString(), Name: "Priya Raman", Email: "priya@acme-logistics.example", Role: "billing"},
	}
}

func (d *Directory) CreateVendor(name, contactEmail, tier string) (*Vendor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("vendor name is required")
	}
	if !strings.Contains(contactEmail, "@") {
		return nil, fmt.Errorf("contact email %q is not valid", contactEmail)
	}
	if tier == "" {
		tier = "standard"
	}
	if !validTiers[tier] {
		return nil, fmt.Errorf("unknown tier %q, expected standard, premium or enterprise", tier)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, v := range d.vendors {
		if strings.EqualFold(v.Name, name) {
			return nil, fmt.Errorf("vendor %q already exists as %s", name, v.Id)
		}
	}

	v := &Vendor{
		Id:           "vnd_" + uuid.NewString(),
		Name:         name,
		ContactEmail: contactEmail,
		Tier:         tier,
		Status:       "pending_activation",
		CreatedAt:    time.Now(),
	}
	d.vendors[v.Id] = v

	copied := *v
	return &copied, nil
}

func (d *Directory) GetVendor(id string) (*Vendor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	v, ok := d.vendors[id]
	if !ok {
		return nil, fmt.Errorf("vendor %s not found", id)
	}
	copied := *v
	return &copied, nil
}

// FindVendorByName is a convenience for conversational lookups where
// the model only knows the display name.
func (d *Directory) FindVendorByName(name string) (*Vendor, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, v := range d.vendors {
		if strings.EqualFold(v.Name, strings.TrimSpace(name)) {
			copied := *v
			return &copied, true
		}
	}
	return nil, false
}

func (d *Directory) IssueCredentials(vendorId, environment string) (*Credentials, error) {
	if environment == "" {
		environment = "sandbox"
	}
	if !validEnvs[environment] {
		return nil, fmt.Errorf("unknown environment %q, expected sandbox or staging", environment)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.vendors[vendorId]; !ok {
		return nil, fmt.Errorf("vendor %s not found", vendorId)
	}

	// re-issuing rotates the secret; the old pair stops working
	c := &Credentials{
		VendorId:     vendorId,
		ClientId:     "cli_" + uuid.NewString(),
		ClientSecret: "sec_" + uuid.NewString(),
		Environment:  environment,
		ExpiresAt:    time.Now().Add(90 * 24 * time.Hour),
	}
	d.credentials[vendorId] = c

	copied := *c
	return &copied, nil
}

func (d *Directory) ConfigureSSO(vendorId, protocol, metadataURL string) (*SSOConfig, error) {
	if !validProtos[protocol] {
		return nil, fmt.Errorf("unknown protocol %q, expected saml or oidc", protocol)
	}
	if !strings.HasPrefix(metadataURL, "https://") {
		return nil, fmt.Errorf("metadata url must be https")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.vendors[vendorId]; !ok {
		return nil, fmt.Errorf("vendor %s not found", vendorId)
	}

	cfg := &SSOConfig{
		VendorId:    vendorId,
		Protocol:    protocol,
		MetadataURL: metadataURL,
		AcsURL:      fmt.Sprintf("https://portal.example.com/sso/%s/acs", vendorId),
		Status:      "pending_verification",
	}
	d.sso[vendorId] = cfg

	copied := *cfg
	return &copied, nil
}

func (d *Directory) QueryRoster(vendorId, role string) ([]RosterEntry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.vendors[vendorId]; !ok {
		return nil, fmt.Errorf("vendor %s not found", vendorId)
	}

	entries := d.rosters[vendorId]
	if role == "" {
		return append([]RosterEntry(nil), entries...), nil
	}

	filtered := make([]RosterEntry, 0, len(entries))
	for _, e := range entries {
		if strings.EqualFold(e.Role, role) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (d *Directory) SendTestMessage(vendorId, channel, body string) (*Delivery, error) {
	if !validChannels[channel] {
		return nil, fmt.Errorf("unknown channel %q, expected email or webhook", channel)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("message body is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := d.vendors[vendorId]
	if !ok {
		return nil, fmt.Errorf("vendor %s not found", vendorId)
	}
	if channel == "webhook" {
		if _, ok := d.credentials[vendorId]; !ok {
			return nil, fmt.Errorf("vendor %s has no credentials, issue sandbox credentials before webhook tests", v.Id)
		}
	}

	rec := Delivery{
		Id:          "msg_" + uuid.NewString(),
		VendorId:    vendorId,
		Channel:     channel,
		Body:        body,
		Status:      "delivered",
		DeliveredAt: time.Now(),
	}
	d.deliveries = append(d.deliveries, rec)

	return &rec, nil
}

package core

import (
	"time"

	"github.com/google/uuid"
)

// Capabilities is the closed set of feature flags attached to a clinic.
// Every flag is independently toggleable through the config gate.
type Capabilities struct {
	HasClinical       bool `json:"hasClinical" db:"has_clinical"`
	HasAgenda         bool `json:"hasAgenda" db:"has_agenda"`
	HasInternment     bool `json:"hasInternment" db:"has_internment"`
	HasHomeCare       bool `json:"hasHomeCare" db:"has_home_care"`
	HasPetshopService bool `json:"hasPetshopService" db:"has_petshop_service"`
	HasPetshopRetail  bool `json:"hasPetshopRetail" db:"has_petshop_retail"`
	HasStockAdvanced  bool `json:"hasStockAdvanced" db:"has_stock_advanced"`
	HasFinancial      bool `json:"hasFinancial" db:"has_financial"`
	HasFiscal         bool `json:"hasFiscal" db:"has_fiscal"`
	HasContabil       bool `json:"hasContabil" db:"has_contabil"`
	HasAI             bool `json:"hasAI" db:"has_ai"`
	HasAppTutor       bool `json:"hasAppTutor" db:"has_app_tutor"`
	HasNPS            bool `json:"hasNPS" db:"has_nps"`
}

// FlagNames lists every valid capability flag, in a stable order.
func FlagNames() []string {
	return []string{
		"hasClinical", "hasAgenda", "hasInternment", "hasHomeCare",
		"hasPetshopService", "hasPetshopRetail", "hasStockAdvanced",
		"hasFinancial", "hasFiscal", "hasContabil", "hasAI",
		"hasAppTutor", "hasNPS",
	}
}

// Flag returns the current value of the named flag. The second return
// is false for names outside the closed set.
func (c Capabilities) Flag(name string) (bool, bool) {
	switch name {
	case "hasClinical":
		return c.HasClinical, true
	case "hasAgenda":
		return c.HasAgenda, true
	case "hasInternment":
		return c.HasInternment, true
	case "hasHomeCare":
		return c.HasHomeCare, true
	case "hasPetshopService":
		return c.HasPetshopService, true
	case "hasPetshopRetail":
		return c.HasPetshopRetail, true
	case "hasStockAdvanced":
		return c.HasStockAdvanced, true
	case "hasFinancial":
		return c.HasFinancial, true
	case "hasFiscal":
		return c.HasFiscal, true
	case "hasContabil":
		return c.HasContabil, true
	case "hasAI":
		return c.HasAI, true
	case "hasAppTutor":
		return c.HasAppTutor, true
	case "hasNPS":
		return c.HasNPS, true
	}
	return false, false
}

// SetFlag writes the named flag through the closed set of typed
// setters. It returns false for names outside the set; nothing is
// written in that case.
func (c *Capabilities) SetFlag(name string, value bool) bool {
	switch name {
	case "hasClinical":
		c.HasClinical = value
	case "hasAgenda":
		c.HasAgenda = value
	case "hasInternment":
		c.HasInternment = value
	case "hasHomeCare":
		c.HasHomeCare = value
	case "hasPetshopService":
		c.HasPetshopService = value
	case "hasPetshopRetail":
		c.HasPetshopRetail = value
	case "hasStockAdvanced":
		c.HasStockAdvanced = value
	case "hasFinancial":
		c.HasFinancial = value
	case "hasFiscal":
		c.HasFiscal = value
	case "hasContabil":
		c.HasContabil = value
	case "hasAI":
		c.HasAI = value
	case "hasAppTutor":
		c.HasAppTutor = value
	case "hasNPS":
		c.HasNPS = value
	default:
		return false
	}
	return true
}

// FlagColumn maps a flag name to its database column. Updates go through
// this closed mapping only, never through caller-supplied column names.
func FlagColumn(name string) (string, bool) {
	switch name {
	case "hasClinical":
		return "has_clinical", true
	case "hasAgenda":
		return "has_agenda", true
	case "hasInternment":
		return "has_internment", true
	case "hasHomeCare":
		return "has_home_care", true
	case "hasPetshopService":
		return "has_petshop_service", true
	case "hasPetshopRetail":
		return "has_petshop_retail", true
	case "hasStockAdvanced":
		return "has_stock_advanced", true
	case "hasFinancial":
		return "has_financial", true
	case "hasFiscal":
		return "has_fiscal", true
	case "hasContabil":
		return "has_contabil", true
	case "hasAI":
		return "has_ai", true
	case "hasAppTutor":
		return "has_app_tutor", true
	case "hasNPS":
		return "has_nps", true
	}
	return "", false
}

// Identity holds the mutable profile fields of a clinic.
type Identity struct {
	Name           string `json:"name" db:"name"`
	Address        string `json:"address" db:"address"`
	Phone          string `json:"phone" db:"phone"`
	Email          string `json:"email" db:"email"`
	Website        string `json:"website" db:"website"`
	LogoURL        string `json:"logo_url" db:"logo_url"`
	OperatingHours string `json:"operating_hours" db:"operating_hours"`
	CNPJ           string `json:"cnpj" db:"cnpj"`
}

// IdentityUpdate carries a partial identity change. Nil fields are left
// untouched by the update.
type IdentityUpdate struct {
	Name           *string `json:"name"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Website        *string `json:"website"`
	LogoURL        *string `json:"logo_url"`
	OperatingHours *string `json:"operating_hours"`
	CNPJ           *string `json:"cnpj"`
}

// Clinic is one tenant row: identity plus the current flag set.
type Clinic struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Identity     Identity     `json:"identity"`
	Capabilities Capabilities `json:"capabilities"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

package domain

import (
	"time"

	"chronicle/internal/platform/locale"
)

const (
	DefaultID          = "default-chronicle"
	DefaultName        = "The First Tale"
	DefaultDescription = "Your first adventure begins here."
	FallbackName       = "New Chronicle"
)

// Settings are passed verbatim to narrative generation.
type Settings struct {
	ImageStyle     string `json:"imageStyle,omitempty"`
	AIInstructions string `json:"aiInstructions,omitempty"`
}

type Campaign struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Settings    *Settings `json:"settings,omitempty"`
}

// Patch lists the mutable fields of a campaign. Nil fields are left alone.
type Patch struct {
	Name        *string
	Description *string
	Settings    *Settings
}

// Workspace is the process-wide selection: which campaign is loaded and
// which language the interface and translations use.
type Workspace struct {
	ActiveCampaignID string
	Language         locale.Language
}

func NewDefault(now time.Time) Campaign {
	return Campaign{ID: DefaultID, Name: DefaultName, Description: DefaultDescription, CreatedAt: now}
}

func NewFallback(id string, now time.Time) Campaign {
	return Campaign{ID: id, Name: FallbackName, CreatedAt: now}
}

func (c Campaign) StyleSettings() Settings {
	if c.Settings == nil {
		return Settings{}
	}
	return *c.Settings
}

// Migration records which legacy collections were copied into a campaign.
type Migration struct {
	Sessions   bool
	Characters bool
}

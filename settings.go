package seoengine

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Settings are the site-wide SEO options edited on the admin settings page.
//
// Lifecycle: InstallSettings seeds defaults when the App starts (existing
// values are never overwritten), LoadSettings is read through the site cache
// on every request, SaveSettings persists the admin form, and
// UninstallSettings removes every option again.
type Settings struct {
	SiteTitle          string `form:"site_title" validate:"max=70"`
	SiteDescription    string `form:"site_description" validate:"max=300"`
	DefaultKeywords    string `form:"default_keywords" validate:"max=500"`
	DefaultDescription string `form:"default_description" validate:"max=320"`
	TwitterHandle      string `form:"twitter_handle" validate:"omitempty,startswith=@,max=16"`
	FacebookAppID      string `form:"facebook_app_id" validate:"omitempty,numeric,max=32"`
}

const optionPrefix = "seo_"

func (s *Settings) fields() []struct {
	name string
	val  *string
} {
	return []struct {
		name string
		val  *string
	}{
		{optionPrefix + "site_title", &s.SiteTitle},
		{optionPrefix + "site_description", &s.SiteDescription},
		{optionPrefix + "default_keywords", &s.DefaultKeywords},
		{optionPrefix + "default_description", &s.DefaultDescription},
		{optionPrefix + "twitter_handle", &s.TwitterHandle},
		{optionPrefix + "facebook_app_id", &s.FacebookAppID},
	}
}

// Title returns the configured site title, or fallback when none is set.
func (s Settings) Title(fallback string) string {
	if s.SiteTitle != "" {
		return s.SiteTitle
	}
	return fallback
}

// InstallSettings seeds every option with its default value. Options that
// already exist keep their current value.
func (st *Store) InstallSettings(defaults Settings) error {
	for _, f := range defaults.fields() {
		if err := st.AddOption(f.name, *f.val); err != nil {
			return fmt.Errorf("install option %s: %w", f.name, err)
		}
	}
	return nil
}

// LoadSettings reads the current settings. Missing options read as "".
func (st *Store) LoadSettings() (Settings, error) {
	var s Settings
	for _, f := range s.fields() {
		v, err := st.GetOption(f.name)
		if err != nil {
			return Settings{}, fmt.Errorf("load option %s: %w", f.name, err)
		}
		*f.val = v
	}
	return s, nil
}

// SaveSettings persists every settings field.
func (st *Store) SaveSettings(s Settings) error {
	for _, f := range s.fields() {
		if err := st.SetOption(f.name, *f.val); err != nil {
			return fmt.Errorf("save option %s: %w", f.name, err)
		}
	}
	return nil
}

// UninstallSettings deletes all SEO options.
func (st *Store) UninstallSettings() error {
	return st.DeleteOptions(optionPrefix)
}

// formValidator adapts go-playground/validator to echo's Validator interface.
type formValidator struct {
	v *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{v: validator.New()}
}

func (fv *formValidator) Validate(i interface{}) error {
	return fv.v.Struct(i)
}

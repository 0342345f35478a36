package domain

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	DefaultTargetName   = "testfire"
	DefaultBaseURL      = "http://demo.testfire.net"
	DefaultLoginPath    = "/doLogin"
	DefaultLandingPath  = "/bank/main.jsp"
	DefaultTransferPath = "/bank/doTransfer"
)

// Target describes one deployment of the bank application.
type Target struct {
	Name         string
	BaseURL      string
	LoginPath    string
	LandingPath  string
	TransferPath string
	CookieName   string
}

func DefaultTarget() Target {
	return Target{
		Name:         DefaultTargetName,
		BaseURL:      DefaultBaseURL,
		LoginPath:    DefaultLoginPath,
		LandingPath:  DefaultLandingPath,
		TransferPath: DefaultTransferPath,
		CookieName:   DefaultAccountCookieName,
	}
}

// WithDefaults fills every empty field from the built-in profile.
func (t Target) WithDefaults() Target {
	d := DefaultTarget()
	if strings.TrimSpace(t.Name) == "" {
		t.Name = d.Name
	}
	if strings.TrimSpace(t.BaseURL) == "" {
		t.BaseURL = d.BaseURL
	}
	if strings.TrimSpace(t.LoginPath) == "" {
		t.LoginPath = d.LoginPath
	}
	if strings.TrimSpace(t.LandingPath) == "" {
		t.LandingPath = d.LandingPath
	}
	if strings.TrimSpace(t.TransferPath) == "" {
		t.TransferPath = d.TransferPath
	}
	if strings.TrimSpace(t.CookieName) == "" {
		t.CookieName = d.CookieName
	}
	return t
}

func (t Target) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name is required")
	}

	parsed, err := url.Parse(t.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base url must use http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("base url host is required")
	}

	return nil
}

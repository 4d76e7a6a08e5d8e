// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package lifecycle

import (
	"net/url"
	"strings"
	"time"

	"github.com/htwlabs/eventdesk/internal/apperr"
	"github.com/htwlabs/eventdesk/internal/model"
)

// validateForSubmit checks every submit precondition and collects the full
// list of offending fields, so a host sees all issues at once instead of
// fixing them one submit attempt at a time.
func validateForSubmit(e model.Event) error {
	var fields []string

	if strings.TrimSpace(e.Title) == "" {
		fields = append(fields, "title")
	}
	if len(strings.TrimSpace(e.ShortDescription)) < model.MinDescriptionLen {
		fields = append(fields, "shortDescription")
	}
	if !e.EventDate.Valid || !e.EventDate.Time.After(time.Now()) {
		fields = append(fields, "eventDate")
	}
	if strings.TrimSpace(e.Venue) == "" {
		fields = append(fields, "venue")
	}
	if strings.TrimSpace(e.TargetAudience) == "" {
		fields = append(fields, "targetAudience")
	}
	if len(e.Formats) == 0 || len(e.Formats) > model.MaxFormats {
		fields = append(fields, "formats")
	}
	if e.Capacity < 1 {
		fields = append(fields, "capacity")
	}
	if !e.AgreementAcceptedAt.Valid {
		fields = append(fields, "agreement")
	}

	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

// validateRegistrationURL checks that raw is a well-formed absolute http(s)
// URL. When requireLuma is set it additionally has to reference the lu.ma
// registration platform, enforcing the register-externally-before-publish
// business rule.
func validateRegistrationURL(raw string, requireLuma bool) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperr.Validation("lumaUrl")
	}

	if requireLuma {
		host := strings.ToLower(u.Hostname())
		if host != "lu.ma" && !strings.HasSuffix(host, ".lu.ma") {
			return apperr.Validation("lumaUrl")
		}
	}

	return nil
}

// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package checklist generates post-approval task lists from an event's
// format tags and date. Generation is a pure function: same inputs always
// yield the same items in the same order.
package checklist

import (
	"sort"
	"strings"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
)

// TemplateForFormats picks a checklist template by inspecting format tags
// case-insensitively. Check order is panel, mixer, workshop; first match
// wins, otherwise the general template.
func TemplateForFormats(formats []string) string {
	joined := strings.ToLower(strings.Join(formats, " "))

	switch {
	case strings.Contains(joined, "panel") || strings.Contains(joined, "discussion"):
		return TemplatePanel
	case strings.Contains(joined, "mixer") || strings.Contains(joined, "networking"):
		return TemplateMixer
	case strings.Contains(joined, "workshop") || strings.Contains(joined, "training"):
		return TemplateWorkshop
	default:
		return TemplateGeneral
	}
}

// Generate builds the checklist for the given template name and event date.
// Unknown template names fall back to the general template. A zero eventDate
// omits due dates; all other fields are still populated, and dateless items
// keep their template order at the end of the list.
func Generate(templateName string, eventDate time.Time) []model.ChecklistItem {
	tpl, ok := templates[templateName]
	if !ok {
		templateName = TemplateGeneral
		tpl = templates[TemplateGeneral]
	}

	var items []model.ChecklistItem
	appendSection := func(section string, tasks []templateTask) {
		for _, task := range tasks {
			item := model.ChecklistItem{
				ID:      templateName + "-" + task.id,
				Task:    task.task,
				Section: section,
			}
			if !eventDate.IsZero() {
				due := eventDate.AddDate(0, 0, -task.daysBeforeEvent)
				item.DueDate = &due
			}
			items = append(items, item)
		}
	}

	appendSection(model.SectionPlanning, tpl.planning)
	appendSection(model.SectionMarketing, tpl.marketing)
	appendSection(model.SectionLogistics, tpl.logistics)

	// Earliest due date first; items without one sort last, stable in
	// template order.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].DueDate, items[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	return items
}

// GenerateForFormats combines template selection and generation.
func GenerateForFormats(formats []string, eventDate time.Time) []model.ChecklistItem {
	return Generate(TemplateForFormats(formats), eventDate)
}

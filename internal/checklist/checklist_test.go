// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package checklist

import (
	"reflect"
	"testing"
	"time"

	"github.com/htwlabs/eventdesk/internal/model"
)

func TestTemplateForFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		want    string
	}{
		{"panel keyword", []string{"Panel"}, TemplatePanel},
		{"discussion keyword", []string{"Fireside Discussion"}, TemplatePanel},
		{"mixer keyword", []string{"Evening Mixer"}, TemplateMixer},
		{"networking keyword", []string{"networking"}, TemplateMixer},
		{"workshop keyword", []string{"Hands-on Workshop"}, TemplateWorkshop},
		{"training keyword", []string{"TRAINING"}, TemplateWorkshop},
		{"no match", []string{"Hackathon"}, TemplateGeneral},
		{"empty", nil, TemplateGeneral},
		// Panel check runs before mixer and workshop; first match wins.
		{"panel beats mixer", []string{"mixer", "panel"}, TemplatePanel},
		{"mixer beats workshop", []string{"workshop", "networking"}, TemplateMixer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TemplateForFormats(tt.formats); got != tt.want {
				t.Errorf("TemplateForFormats(%v) = %q, want %q", tt.formats, got, tt.want)
			}
		})
	}
}

func TestGenerateProducesNineTasksInThreeSections(t *testing.T) {
	eventDate := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

	for _, name := range []string{TemplatePanel, TemplateMixer, TemplateWorkshop, TemplateGeneral} {
		items := Generate(name, eventDate)
		if len(items) != 9 {
			t.Fatalf("Generate(%s): len = %d, want 9", name, len(items))
		}

		sections := map[string]int{}
		for _, item := range items {
			sections[item.Section]++
			if item.Completed {
				t.Errorf("Generate(%s): item %s starts completed", name, item.ID)
			}
			if item.DueDate == nil {
				t.Errorf("Generate(%s): item %s missing due date", name, item.ID)
			}
		}
		for _, section := range []string{model.SectionPlanning, model.SectionMarketing, model.SectionLogistics} {
			if sections[section] != 3 {
				t.Errorf("Generate(%s): section %s has %d tasks, want 3", name, section, sections[section])
			}
		}
	}
}

func TestGenerateDueDates(t *testing.T) {
	eventDate := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)
	items := Generate(TemplatePanel, eventDate)

	byID := map[string]model.ChecklistItem{}
	for _, item := range items {
		byID[item.ID] = item
	}

	// "Confirm 3-5 panelists" is 30 days before the event.
	p1 := byID["panel-p1"]
	want := eventDate.AddDate(0, 0, -30)
	if p1.DueDate == nil || !p1.DueDate.Equal(want) {
		t.Errorf("panel-p1 due = %v, want %v", p1.DueDate, want)
	}

	// Day-of task keeps the event date itself.
	l3 := byID["panel-l3"]
	if l3.DueDate == nil || !l3.DueDate.Equal(eventDate) {
		t.Errorf("panel-l3 due = %v, want %v", l3.DueDate, eventDate)
	}
}

func TestGenerateSortedByDueDate(t *testing.T) {
	eventDate := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)
	items := Generate(TemplateGeneral, eventDate)

	for i := 1; i < len(items); i++ {
		if items[i].DueDate.Before(*items[i-1].DueDate) {
			t.Fatalf("items out of order at %d: %v before %v", i, items[i].DueDate, items[i-1].DueDate)
		}
	}
	if items[0].ID != "general-p1" && items[0].ID != "general-m1" {
		t.Errorf("earliest item = %s, want a 21-days-out task", items[0].ID)
	}
}

func TestGenerateWithoutDateOmitsDueDates(t *testing.T) {
	items := Generate(TemplateMixer, time.Time{})

	if len(items) != 9 {
		t.Fatalf("len = %d, want 9", len(items))
	}
	for i, item := range items {
		if item.DueDate != nil {
			t.Errorf("item %s has due date without an event date", item.ID)
		}
		if item.Task == "" || item.Section == "" || item.ID == "" {
			t.Errorf("item %d missing fields: %+v", i, item)
		}
	}

	// Dateless items keep template order: planning, marketing, logistics.
	if items[0].ID != "mixer-p1" || items[8].ID != "mixer-l3" {
		t.Errorf("template order not preserved: first=%s last=%s", items[0].ID, items[8].ID)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	eventDate := time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)

	a := Generate(TemplateWorkshop, eventDate)
	b := Generate(TemplateWorkshop, eventDate)

	if !reflect.DeepEqual(a, b) {
		t.Error("repeated generation with identical inputs differs")
	}
}

func TestGenerateUnknownTemplateFallsBack(t *testing.T) {
	eventDate := time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)
	items := Generate("keynote", eventDate)

	if len(items) != 9 {
		t.Fatalf("len = %d, want 9", len(items))
	}
	for _, item := range items {
		if item.ID[:8] != "general-" {
			t.Fatalf("item id %s, want general- prefix", item.ID)
		}
	}
}

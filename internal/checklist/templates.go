// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package checklist

// templateTask is one task definition inside a template, with its offset in
// days before the event date.
type templateTask struct {
	id             string
	task           string
	daysBeforeEvent int
}

// template is a named, fixed set of post-approval tasks grouped into exactly
// three sections.
type template struct {
	name      string
	planning  []templateTask
	marketing []templateTask
	logistics []templateTask
}

// Template names
const (
	TemplatePanel    = "panel"
	TemplateMixer    = "mixer"
	TemplateWorkshop = "workshop"
	TemplateGeneral  = "general"
)

var templates = map[string]template{
	TemplatePanel: {
		name: "Panel Discussion",
		planning: []templateTask{
			{"p1", "Confirm 3-5 panelists", 30},
			{"p2", "Prepare moderator questions", 14},
			{"p3", "Send panelist prep materials", 7},
		},
		marketing: []templateTask{
			{"m1", "Create event graphic with panelist photos", 21},
			{"m2", "Write LinkedIn event post", 14},
			{"m3", "Send reminder email to registrants", 2},
		},
		logistics: []templateTask{
			{"l1", "Test A/V setup for panel format", 3},
			{"l2", "Prepare name cards for panelists", 1},
			{"l3", "Set up panel seating arrangement", 0},
		},
	},
	TemplateMixer: {
		name: "Networking Mixer",
		planning: []templateTask{
			{"p1", "Confirm catering order", 14},
			{"p2", "Plan icebreaker activities", 7},
			{"p3", "Create name tag template", 3},
		},
		marketing: []templateTask{
			{"m1", "Create social media graphics", 21},
			{"m2", "Post in relevant Slack/Discord channels", 10},
			{"m3", "Final headcount for catering", 3},
		},
		logistics: []templateTask{
			{"l1", "Set up registration table", 0},
			{"l2", "Arrange furniture for mingling", 0},
			{"l3", "Prepare music playlist", 1},
		},
	},
	TemplateWorkshop: {
		name: "Workshop",
		planning: []templateTask{
			{"p1", "Finalize workshop curriculum", 21},
			{"p2", "Prepare workshop materials/handouts", 7},
			{"p3", "Send pre-workshop survey", 5},
		},
		marketing: []templateTask{
			{"m1", "Write detailed workshop description", 28},
			{"m2", "Create promotional video/teaser", 14},
			{"m3", "Send workshop prep email", 2},
		},
		logistics: []templateTask{
			{"l1", "Set up workshop stations/materials", 0},
			{"l2", "Test all required software/tools", 1},
			{"l3", "Print attendance sheets", 1},
		},
	},
	TemplateGeneral: {
		name: "General Event",
		planning: []templateTask{
			{"p1", "Finalize event agenda", 21},
			{"p2", "Confirm all speakers/facilitators", 14},
			{"p3", "Prepare event materials", 7},
		},
		marketing: []templateTask{
			{"m1", "Create promotional materials", 21},
			{"m2", "Share on social media", 14},
			{"m3", "Send reminder notifications", 2},
		},
		logistics: []templateTask{
			{"l1", "Prepare venue setup", 1},
			{"l2", "Test audio/visual equipment", 1},
			{"l3", "Prepare registration materials", 0},
		},
	},
}

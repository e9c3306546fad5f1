// Package domain holds the fixed catalogs shared by every component: the
// ordered admission stages and the document types a student submits.
package domain

// Stage is one step of the counselling process.
type Stage struct {
	Name     string `json:"name"`
	WhatNext string `json:"whatsNext"`
}

// stages is the single canonical ordering. Every reader and writer of a
// student's stage resolves names against this list.
var stages = []Stage{
	{Name: "Registration for Counselling (MHT-CET 2026)", WhatNext: "Complete your registration for MHT-CET 2026 counselling"},
	{Name: "Document Verification at Facilitation Centre", WhatNext: "Visit the Facilitation Centre for document verification"},
	{Name: "Display of Merit List", WhatNext: "Await the display of State Level / All India Merit List"},
	{Name: "Filling Option Form for CAP Rounds", WhatNext: "Fill your option form for CAP Rounds"},
	{Name: "Seat Allotment", WhatNext: "Await seat allotment results"},
	{Name: "Accepting Offered Seat", WhatNext: "Accept your offered seat via Candidate Login"},
	{Name: "Reporting to Allotted Institute", WhatNext: "Report to your allotted institute with documents"},
	{Name: "Commencement of Course", WhatNext: "Congratulations! Your admission is complete. Best of luck!"},
}

// DefaultWhatNext is shown when no stage-specific guidance applies.
const DefaultWhatNext = "Complete your registration to get started"

var stageIndex = func() map[string]int {
	m := make(map[string]int, len(stages))
	for i, s := range stages {
		m[s.Name] = i
	}
	return m
}()

// StageNames returns the ordered stage names.
func StageNames() []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name
	}
	return names
}

// StageCount returns the number of stages.
func StageCount() int { return len(stages) }

// IsKnownStage reports whether name is in the catalog.
func IsKnownStage(name string) bool {
	_, ok := stageIndex[name]
	return ok
}

// ResolveStage maps a stored stage name to its canonical name and index.
// A nil or unrecognised name resolves to the first stage.
func ResolveStage(stored *string) (string, int) {
	if stored != nil {
		if i, ok := stageIndex[*stored]; ok {
			return stages[i].Name, i
		}
	}
	return stages[0].Name, 0
}

// WhatNextFor returns the guidance text for the stage at index.
func WhatNextFor(index int) string {
	if index < 0 || index >= len(stages) {
		return DefaultWhatNext
	}
	return stages[index].WhatNext
}

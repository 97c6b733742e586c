package chatmem

import (
	"encoding/json"
	"time"
)

// snapshot is the wire form of Memory: exam date as an ISO-8601 string
// or absent, everything else plain JSON. It is what the store persists.
type snapshot struct {
	ExamDate   string   `json:"exam_date,omitempty"`
	Subjects   []string `json:"subjects,omitempty"`
	DailyHours *float64 `json:"daily_hours,omitempty"`
	StudyGoal  string   `json:"study_goal,omitempty"`
	StudyDays  *int     `json:"study_days,omitempty"`
}

// Encode serializes the memory for persistence.
func (m Memory) Encode() ([]byte, error) {
	snap := snapshot{
		Subjects:   m.Subjects,
		DailyHours: m.DailyHours,
		StudyGoal:  m.StudyGoal,
		StudyDays:  m.StudyDays,
	}
	if m.ExamDate != nil {
		snap.ExamDate = m.ExamDate.Format(time.RFC3339)
	}
	return json.Marshal(snap)
}

// Decode restores a memory from its persisted form. Empty input,
// malformed JSON, or a bad date yields an empty memory, never an error;
// a corrupt snapshot must not take the assistant down.
func Decode(raw []byte) Memory {
	if len(raw) == 0 {
		return Memory{}
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Memory{}
	}

	m := Memory{
		DailyHours: snap.DailyHours,
		StudyGoal:  snap.StudyGoal,
		StudyDays:  snap.StudyDays,
	}
	if snap.ExamDate != "" {
		if t, err := time.Parse(time.RFC3339, snap.ExamDate); err == nil {
			m.ExamDate = &t
		}
	}
	for _, s := range snap.Subjects {
		if s != "" {
			m.Subjects = append(m.Subjects, s)
		}
	}
	if snap.DailyHours != nil && *snap.DailyHours <= 0 {
		m.DailyHours = nil
	}
	if snap.StudyDays != nil && *snap.StudyDays <= 0 {
		m.StudyDays = nil
	}
	return m
}

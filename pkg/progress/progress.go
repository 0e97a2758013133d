// Package progress owns every derived field of a session's progress record.
// Callers toggle milestones and report meeting data; overall progress,
// attendance verification and completion eligibility are always recomputed
// here and never accepted verbatim from a request.
package progress

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/skillswap/skill-exchange/pkg/models"
)

const (
	// CompletionProgressThreshold is the minimum overall progress (percent)
	// required before a session may complete.
	CompletionProgressThreshold = 70

	// MinAttendanceRate is the minimum meeting attendance rate (percent)
	// for attendance to count as verified.
	MinAttendanceRate = 80

	// MinParticipants is the minimum number of meeting participants for
	// attendance to count as verified. Both tutor and learner must show up.
	MinParticipants = 2
)

// milestoneMarks are the fixed checkpoints of every session, as fractions of
// the session duration.
var milestoneMarks = []struct {
	fraction float64
	title    string
}{
	{0.0, "Kickoff and goal setting"},
	{0.3, "Fundamentals covered"},
	{0.6, "Guided practice"},
	{0.8, "Independent exercise"},
	{1.0, "Review and wrap-up"},
}

// objectiveTemplates maps skill keywords to learning objectives. Keywords are
// checked in order; the first match wins and unmatched skills fall back to
// the generic template.
var objectiveTemplates = []struct {
	keyword    string
	objectives []string
}{
	{"programming", []string{
		"Understand the core syntax and tooling",
		"Write and debug a small program",
		"Apply common idioms to a practical exercise",
	}},
	{"language", []string{
		"Learn essential vocabulary for the topic",
		"Hold a short guided conversation",
		"Review grammar mistakes from the exercise",
	}},
	{"music", []string{
		"Warm up with technique drills",
		"Practice the assigned piece section by section",
		"Play the piece end to end with feedback",
	}},
	{"design", []string{
		"Review reference work and critique",
		"Produce a rough draft with guidance",
		"Iterate the draft based on feedback",
	}},
}

var genericObjectives = []string{
	"Establish the learner's current level",
	"Work through the core material together",
	"Agree on follow-up practice",
}

// NewTracking builds the initial progress record for a session that has just
// started: five fixed milestones scaled to the duration and objectives
// derived from the skill.
func NewTracking(skill string, durationMinutes int32) *models.ProgressTracking {
	milestones := make([]models.Milestone, 0, len(milestoneMarks))
	for i, mark := range milestoneMarks {
		milestones = append(milestones, models.Milestone{
			Id:           fmt.Sprintf("m%d", i+1),
			Title:        mark.title,
			TargetMinute: int32(math.Round(mark.fraction * float64(durationMinutes))),
		})
	}
	return &models.ProgressTracking{
		Milestones: milestones,
		Objectives: ObjectivesForSkill(skill),
	}
}

// ObjectivesForSkill returns the learning objectives for a skill by keyword
// match, falling back to the generic template.
func ObjectivesForSkill(skill string) []string {
	lowered := strings.ToLower(skill)
	for _, tmpl := range objectiveTemplates {
		if strings.Contains(lowered, tmpl.keyword) {
			return append([]string(nil), tmpl.objectives...)
		}
	}
	return append([]string(nil), genericObjectives...)
}

// ApplyMilestone toggles one milestone and recomputes the derived fields.
// Setting a milestone to its current state is a no-op, so client retries are
// harmless. Returns false if no milestone has the given id.
func ApplyMilestone(p *models.ProgressTracking, milestoneID string, completed bool, notes string, now time.Time) bool {
	var target *models.Milestone
	for i := range p.Milestones {
		if p.Milestones[i].Id == milestoneID {
			target = &p.Milestones[i]
			break
		}
	}
	if target == nil {
		return false
	}

	if target.Completed != completed {
		target.Completed = completed
		if completed {
			ts := now
			target.CompletedAt = &ts
		} else {
			target.CompletedAt = nil
		}
	}
	if notes != "" {
		target.Notes = notes
	}

	Recompute(p)
	return true
}

// ApplyMeetingData records the outcome of the video meeting and recomputes
// the derived fields. Attendance is verified only when both parties joined
// and the attendance rate clears the threshold.
func ApplyMeetingData(p *models.ProgressTracking, participants int32, attendanceRate int32, durationMinutes int32, recordingURL string) {
	p.TimeSpentMinutes = durationMinutes
	p.AttendanceVerified = participants >= MinParticipants && attendanceRate >= MinAttendanceRate
	if recordingURL != "" {
		p.RecordingUrl = recordingURL
	}
	Recompute(p)
}

// Recompute rederives OverallProgress and CanComplete from the milestone set.
// CanComplete reflects progress only; attendance and time spent are checked
// again, independently, when completion is actually attempted.
func Recompute(p *models.ProgressTracking) {
	total := len(p.Milestones)
	if total == 0 {
		p.OverallProgress = 0
		p.CanComplete = false
		return
	}
	completed := 0
	for _, m := range p.Milestones {
		if m.Completed {
			completed++
		}
	}
	p.OverallProgress = int32(math.Round(100 * float64(completed) / float64(total)))
	p.CanComplete = p.OverallProgress >= CompletionProgressThreshold
}

// CompletionRequirementsMet checks the full completion gate: progress,
// verified attendance and minimum time spent.
func CompletionRequirementsMet(p *models.ProgressTracking, sessionDurationMinutes int32) bool {
	if p == nil {
		return false
	}
	minTime := sessionDurationMinutes * 7 / 10
	return p.OverallProgress >= CompletionProgressThreshold &&
		p.AttendanceVerified &&
		p.TimeSpentMinutes >= minTime
}

package internal

import "sort"

// Mode selects which sessions an export covers and how much of each
// message survives into the output.
type Mode string

const (
	ModeCurrent        Mode = "current"
	ModeAll            Mode = "all"
	ModeSummary        Mode = "summary"
	ModeCurrentSummary Mode = "current-summary"
)

// CurrentOnly reports whether the mode reads only the active workspace
func (m Mode) CurrentOnly() bool {
	return m == ModeCurrent || m == ModeCurrentSummary
}

// SummaryOnly reports whether the mode keeps only user questions
func (m Mode) SummaryOnly() bool {
	return m == ModeSummary || m == ModeCurrentSummary
}

// sessionTime is the ordering key for a session, preferring the last
// update over creation
func sessionTime(s *ChatSession) int64 {
	if s.LastUpdatedAt != 0 {
		return s.LastUpdatedAt
	}
	return s.CreatedAt
}

// Aggregate shapes extracted sessions into an export bundle for the
// given mode. Counts always reflect the full sessions considered, even
// when summary modes strip assistant messages from the output.
func Aggregate(sessions []*ChatSession, mode Mode) ExportBundle {
	bundle := ExportBundle{Mode: mode}

	var considered []*ChatSession
	if mode.CurrentOnly() {
		considered = latestSession(sessions)
	} else {
		considered = append([]*ChatSession(nil), sessions...)
		sort.SliceStable(considered, func(i, j int) bool {
			return sessionTime(considered[i]) < sessionTime(considered[j])
		})
	}

	for _, session := range considered {
		bundle.SessionCount++
		bundle.DialogueCount += session.DialogueCount()
		bundle.QuestionCount += session.QuestionCount()

		if mode.SummaryOnly() {
			summary := &ChatSession{
				ID:            session.ID,
				Title:         session.Title,
				CreatedAt:     session.CreatedAt,
				LastUpdatedAt: session.LastUpdatedAt,
			}
			for _, msg := range session.Messages {
				if msg.Role == RoleUser {
					summary.Messages = append(summary.Messages, msg)
					bundle.Questions = append(bundle.Questions, msg)
				}
			}
			bundle.Sessions = append(bundle.Sessions, summary)
		} else {
			bundle.Sessions = append(bundle.Sessions, session)
		}
	}

	return bundle
}

// latestSession picks the most recently updated session. Sessions
// without timestamps fall back to extraction order, last wins.
func latestSession(sessions []*ChatSession) []*ChatSession {
	if len(sessions) == 0 {
		return nil
	}

	latest := sessions[len(sessions)-1]
	var latestTime int64
	for _, session := range sessions {
		if t := sessionTime(session); t > latestTime {
			latestTime = t
			latest = session
		}
	}
	return []*ChatSession{latest}
}

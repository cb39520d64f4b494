// internal/router/extract.go
package router

import (
	"regexp"
	"strings"
	"time"
)

var (
	cityAfterIn      = regexp.MustCompile(`(?i)\b(?:weather|temperature|forecast)\s+(?:in|for|at)\s+([a-zA-Z][a-zA-Z\s\-']*?)(?:\?|\.|,|$)`)
	emailAbout       = regexp.MustCompile(`(?i)send email to\s+([^\s]+@[^\s]+?)\s+about\s+(.+)$`)
	emailColon       = regexp.MustCompile(`(?i)\bemail\s+([^\s]+@[^\s]+?):\s*(.+)$`)
	emailComposeFull = regexp.MustCompile(`(?i)compose email to\s+([^\s]+@[^\s]+?)\s+with subject\s+(.+?)\s+and message\s+(.+)$`)
	scheduleAt       = regexp.MustCompile(`(?i)\bschedule\s+(.+?)\s+(?:at|on)\s+(.+?)(?:\?|\.|$)`)
	scheduleBare     = regexp.MustCompile(`(?i)\bschedule\s+(.+?)(?:\?|\.|$)`)
	remindTo         = regexp.MustCompile(`(?i)\bremind me to\s+(.+?)(?:\?|\.|$)`)
	postText         = regexp.MustCompile(`(?i)\b(?:post|tweet)\s*[:]?\s+(.+)$`)
	searchEvents     = regexp.MustCompile(`(?i)\b(?:search|find)\s+events?\s+(.+?)(?:\?|\.|$)`)
)

// extractWeatherParams pulls the city out of phrases like
// "What's the weather in New York?". Absent cities are left for the
// capability default or the conversation context.
func extractWeatherParams(text string) map[string]interface{} {
	if m := cityAfterIn.FindStringSubmatch(text); m != nil {
		return map[string]interface{}{"city": cleanPhrase(m[1])}
	}
	return nil
}

// extractEmailParams handles the three email phrasings recognized by the
// assistant. Subject and body fall back to generated content downstream.
func extractEmailParams(text string) map[string]interface{} {
	if m := emailComposeFull.FindStringSubmatch(text); m != nil {
		return map[string]interface{}{
			"to":      strings.TrimSpace(m[1]),
			"subject": cleanPhrase(m[2]),
			"body":    strings.TrimSpace(m[3]),
		}
	}
	if m := emailAbout.FindStringSubmatch(text); m != nil {
		return map[string]interface{}{
			"to":      strings.TrimSpace(m[1]),
			"subject": cleanPhrase(m[2]),
		}
	}
	if m := emailColon.FindStringSubmatch(text); m != nil {
		return map[string]interface{}{
			"to":   strings.TrimSpace(m[1]),
			"body": strings.TrimSpace(m[2]),
		}
	}
	return nil
}

// extractScheduleParams parses "schedule <title> at <time phrase>".
func extractScheduleParams(text string) map[string]interface{} {
	if m := scheduleAt.FindStringSubmatch(text); m != nil {
		return map[string]interface{}{
			"action": "create",
			"title":  cleanPhrase(m[1]),
			"when":   cleanPhrase(m[2]),
		}
	}
	if m := scheduleBare.FindStringSubmatch(text); m != nil {
		return map[string]interface{}{
			"action": "create",
			"title":  cleanPhrase(m[1]),
			"when":   "tomorrow",
		}
	}
	return map[string]interface{}{"action": "create"}
}

func extractReminderParams(text string) map[string]interface{} {
	if m := remindTo.FindStringSubmatch(text); m != nil {
		return map[string]interface{}{
			"action": "remind",
			"title":  cleanPhrase(m[1]),
		}
	}
	return map[string]interface{}{"action": "remind"}
}

func extractListParams(text string) map[string]interface{} {
	if m := searchEvents.FindStringSubmatch(text); m != nil {
		return map[string]interface{}{
			"action": "search",
			"query":  cleanPhrase(m[1]),
		}
	}
	return map[string]interface{}{"action": "list"}
}

func extractSocialParams(text string) map[string]interface{} {
	if m := postText.FindStringSubmatch(text); m != nil {
		return map[string]interface{}{
			"action":  "post",
			"message": strings.TrimSpace(m[1]),
		}
	}
	return map[string]interface{}{"action": "status"}
}

func cleanPhrase(s string) string {
	return strings.TrimSpace(strings.Trim(s, " .,!?"))
}

// ParseWhen resolves the lightweight time phrases the assistant accepts into
// a concrete start time. Unknown phrases default to tomorrow morning.
func ParseWhen(phrase string, now time.Time) time.Time {
	lowered := strings.ToLower(strings.TrimSpace(phrase))

	day := now
	switch {
	case strings.Contains(lowered, "tomorrow"):
		day = now.AddDate(0, 0, 1)
	case strings.Contains(lowered, "today"):
		day = now
	}

	hour, minute := 9, 0
	if m := clockRef.FindStringSubmatch(lowered); m != nil {
		hour = atoiSafe(m[1])
		if m[2] != "" {
			minute = atoiSafe(m[2])
		}
		if strings.Contains(m[3], "p") && hour < 12 {
			hour += 12
		}
		if strings.Contains(m[3], "a") && hour == 12 {
			hour = 0
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
}

var clockRef = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)?`)

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

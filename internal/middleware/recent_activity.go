package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// RecentActivityCookie stores the last viewed assets as "asset:<id>"
	// entries, pipe joined, most recent first.
	RecentActivityCookie = "recent_activity"

	recentActivityLimit  = 5
	recentActivityMaxAge = 60 * 60 * 24 // 1 day
)

// TrackAssetView records the viewed asset in the recent_activity cookie after
// the detail handler runs. The list is capped at the five most recent unique
// assets; re-viewing an asset moves it back to the front.
func TrackAssetView() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() != http.StatusOK {
			return
		}
		id := c.Param("id")
		if id == "" {
			return
		}

		existing, _ := c.Cookie(RecentActivityCookie)
		entries := updateRecentActivity(parseRecentActivity(existing), "asset:"+id)

		sameSite, secure := cookieSettings()
		c.SetSameSite(sameSite)
		c.SetCookie(RecentActivityCookie, strings.Join(entries, "|"), recentActivityMaxAge, "/", "", secure, false)
	}
}

func parseRecentActivity(value string) []string {
	var entries []string
	for _, entry := range strings.Split(value, "|") {
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func updateRecentActivity(entries []string, entry string) []string {
	updated := []string{entry}
	for _, e := range entries {
		if e != entry {
			updated = append(updated, e)
		}
	}
	if len(updated) > recentActivityLimit {
		updated = updated[:recentActivityLimit]
	}
	return updated
}

// RecentAssetIDs extracts asset ids from the cookie value, most recent first
func RecentAssetIDs(value string) []string {
	var ids []string
	for _, entry := range parseRecentActivity(value) {
		if id, ok := strings.CutPrefix(entry, "asset:"); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

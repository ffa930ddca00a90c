// internal/domain/broadcast.go
package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// DateLayout is the calendar date format used as the Broadcast key.
const DateLayout = "2006-01-02"

// DefaultAdPayment is applied when a broadcast is written without a payment.
var DefaultAdPayment = decimal.NewFromInt(1000)

var broadcastTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// Broadcast is the single scheduled video of one calendar date.
type Broadcast struct {
	ID            int64           `db:"id" json:"id"`                       // Surrogate id, reassigned on every write
	Date          string          `db:"date" json:"date"`                   // YYYY-MM-DD, unique key
	VideoURL      string          `db:"video_url" json:"videoUrl"`          // Absolute URL of the video
	BroadcastTime string          `db:"broadcast_time" json:"broadcastTime"` // HH:MM wall-clock time of day
	VideoTitle    string          `db:"video_title" json:"videoTitle"`      // Display title
	AdPayment     decimal.Decimal `db:"ad_payment" json:"adPayment"`        // Advertiser payment, positive
}

// NewBroadcast creates a Broadcast for the given date. A zero adPayment is
// replaced by DefaultAdPayment.
func NewBroadcast(date, videoURL, broadcastTime, videoTitle string, adPayment decimal.Decimal) *Broadcast {
	if adPayment.IsZero() {
		adPayment = DefaultAdPayment
	}
	return &Broadcast{
		Date:          date,
		VideoURL:      videoURL,
		BroadcastTime: broadcastTime,
		VideoTitle:    videoTitle,
		AdPayment:     adPayment,
	}
}

// ParseBroadcastTime splits an HH:MM string into hour and minute.
func ParseBroadcastTime(s string) (hour, minute int, err error) {
	m := broadcastTimePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid broadcast time %q: want HH:MM", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

// ScheduledAt returns the instant the broadcast starts on the calendar day of
// now, in now's location.
func (b *Broadcast) ScheduledAt(now time.Time) (time.Time, error) {
	hour, minute, err := ParseBroadcastTime(b.BroadcastTime)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := now.Date()
	return time.Date(y, mo, d, hour, minute, 0, 0, now.Location()), nil
}

// DateOf formats the calendar date of t in loc.
func DateOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

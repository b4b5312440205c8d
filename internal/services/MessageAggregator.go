package services

import (
	"fmt"
	"math"
	"time"
	"transcript/internal/models"
	"transcript/internal/providers"

	"github.com/spf13/cast"
)

type OrphanPolicy string

const (
	// OrphanDrop discards a reply whose root was not seen earlier in the
	// pass. Roots are never looked up forward and replies are never buffered.
	OrphanDrop OrphanPolicy = "drop"
	// OrphanPromote keeps such a reply as a top-level message instead.
	OrphanPromote OrphanPolicy = "promote"
)

const (
	gapThresholdSeconds = 86400
	TimeLayout          = "2006-01-02 15:04:05"
	monthIDLayout       = "2006-01"
	monthNameLayout     = "January 2006"
)

type StatsCollectorInterface interface {
	Collect(user, text string)
	CountMessage(user string)
}

type AggregateResult struct {
	Messages []*models.DisplayMessage
	Months   []models.MonthMarker
	// Count is every record with a valid timestamp, whatever its threading outcome.
	Count   int
	Skipped int
	Orphans int
}

// MessageAggregator builds the display tree of one channel in a single
// forward pass over its day batches.
type MessageAggregator struct {
	directory  UserDirectoryInterface
	normalizer TextNormalizerInterface
	collector  StatsCollectorInterface
	logger     providers.Logger
	location   *time.Location
	policy     OrphanPolicy

	result    AggregateResult
	roots     map[string]*models.DisplayMessage
	lastMonth string
	lastWhen  int64
	hasLast   bool
}

func NewMessageAggregator(directory UserDirectoryInterface, normalizer TextNormalizerInterface, collector StatsCollectorInterface, logger providers.Logger, location *time.Location, policy OrphanPolicy) *MessageAggregator {
	if location == nil {
		location = time.Local
	}
	if policy == "" {
		policy = OrphanDrop
	}
	return &MessageAggregator{
		directory:  directory,
		normalizer: normalizer,
		collector:  collector,
		logger:     logger,
		location:   location,
		policy:     policy,
		roots:      make(map[string]*models.DisplayMessage),
	}
}

// Aggregate runs a whole pass over batches already sorted by file name.
func (a *MessageAggregator) Aggregate(batches []models.DayBatch) AggregateResult {
	for _, batch := range batches {
		a.Add(batch)
	}
	return a.Result()
}

func (a *MessageAggregator) Add(batch models.DayBatch) {
	for i := range batch.Messages {
		a.addMessage(batch.Name, i, &batch.Messages[i])
	}
}

func (a *MessageAggregator) Result() AggregateResult {
	return a.result
}

func (a *MessageAggregator) addMessage(file string, index int, msg *models.RawMessage) {
	if msg.TS == "" {
		a.result.Skipped++
		a.logger.Warnf(providers.TypeAggregate, "Skipping record %d of %s: no timestamp", index, file)
		return
	}
	seconds, err := cast.ToFloat64E(msg.TS)
	if err != nil || !validSeconds(seconds) {
		a.result.Skipped++
		a.logger.Warnf(providers.TypeAggregate, "Skipping record %d of %s: bad timestamp %q", index, file, msg.TS)
		return
	}
	when := int64(seconds)
	at := time.Unix(when, 0).In(a.location)

	dm := &models.DisplayMessage{
		TS:            msg.TS,
		FormattedTime: at.Format(TimeLayout),
		IsThreadRoot:  !msg.IsReply(),
		MonthID:       at.Format(monthIDLayout),
		MonthName:     at.Format(monthNameLayout),
	}
	a.resolveUser(dm, msg)
	dm.Text = a.normalizer.Normalize(msg.Body())

	if dm.MonthID != a.lastMonth {
		a.result.Months = append(a.result.Months, models.MonthMarker{ID: dm.MonthID, Name: dm.MonthName})
		dm.NewMonth = true
		a.lastMonth = dm.MonthID
	}

	if a.hasLast && when-a.lastWhen > gapThresholdSeconds {
		dm.TemporalGap = fmt.Sprintf("%.1f days", float64(when-a.lastWhen)/gapThresholdSeconds)
	}
	a.lastWhen = when
	a.hasLast = true

	a.thread(dm, msg)

	if a.collector != nil {
		a.collector.CountMessage(dm.UserName)
		a.collector.Collect(dm.UserName, dm.Text)
	}
	a.result.Count++
}

// validSeconds rejects NaN, infinities and values that do not fit int64.
func validSeconds(seconds float64) bool {
	return !math.IsNaN(seconds) && seconds >= math.MinInt64 && seconds < math.MaxInt64
}

func (a *MessageAggregator) resolveUser(dm *models.DisplayMessage, msg *models.RawMessage) {
	if msg.User == "" {
		dm.UserID = BotUserID
		dm.UserName = BotLabel
		dm.Color = DefaultColor
		dm.UserLabel = a.directory.Label("", msg.UserProfile)
		return
	}
	dm.UserID = msg.User
	dm.UserName = a.directory.Resolve(msg.User).Name
	dm.Color = a.directory.AssignColor(msg.User)
	dm.UserLabel = a.directory.Label(msg.User, msg.UserProfile)
}

func (a *MessageAggregator) thread(dm *models.DisplayMessage, msg *models.RawMessage) {
	if dm.IsThreadRoot {
		if _, dup := a.roots[dm.TS]; !dup {
			a.roots[dm.TS] = dm
		}
		a.result.Messages = append(a.result.Messages, dm)
		return
	}

	if root, ok := a.roots[msg.ThreadTS]; ok {
		root.Replies = append(root.Replies, dm)
		return
	}

	a.result.Orphans++
	if a.policy == OrphanPromote {
		a.logger.Debugf(providers.TypeAggregate, "Reply %s has no earlier root %s, keeping it at top level", dm.TS, msg.ThreadTS)
		a.result.Messages = append(a.result.Messages, dm)
		return
	}
	a.logger.Debugf(providers.TypeAggregate, "Reply %s has no earlier root %s, dropped", dm.TS, msg.ThreadTS)
}

package services

import (
	"sort"
	"transcript/internal/models"
)

// Significance thresholds of the over-representation report. They are fixed
// so reports stay comparable between runs.
const (
	minWordCount       = 24
	minUserWords       = 400
	minRatio           = 1.5
	minUserWordCount   = 10
	strongRatio        = 4
	perMillion         = 1_000_000
	pseudoCountDivisor = 1000 // k = incidence per million / 1000
)

// ComputeOverrepresentation reports, for every word said more than 24 times,
// its incidence per million words and the users who say it notably more
// often than everyone else.
//
// A user's rate is smoothed towards the global rate with a pseudo-count equal
// to the word's global incidence per thousand words:
//
//	rate = 1e6 * (userCount + k*p) / (userTotal + k),  p = count/total
//
// Reports from earlier versions used the incidence per million as k. On that
// scale a word at 2% incidence gets k = 20000, which outweighs any user with
// a few hundred words: a user saying it 50 times in 500 words scores about
// 1.1 and is never listed. Per thousand, the same user scores about 4.8.
func ComputeOverrepresentation(ws *models.WordStats) []models.WordReport {
	if ws.Total == 0 {
		return []models.WordReport{}
	}

	words := make([]string, 0, len(ws.Words))
	for w, c := range ws.Words {
		if c > minWordCount {
			words = append(words, w)
		}
	}
	sort.Slice(words, func(i, j int) bool {
		ci, cj := ws.Words[words[i]], ws.Words[words[j]]
		if ci != cj {
			return ci > cj
		}
		return words[i] < words[j]
	})

	users := ws.Users()
	reports := make([]models.WordReport, 0, len(words))
	for _, w := range words {
		count := ws.Words[w]
		p := float64(count) / float64(ws.Total)
		incidence := perMillion * p
		k := incidence / pseudoCountDivisor

		report := models.WordReport{
			Word:                w,
			Count:               count,
			IncidencePerMillion: incidence,
			Users:               []models.UserRatio{},
		}
		for _, u := range users {
			userTotal := ws.UserTotals[u]
			if userTotal <= minUserWords {
				continue
			}
			userCount := ws.UserWordCount(u, w)
			rate := perMillion * (float64(userCount) + k*p) / (float64(userTotal) + k)
			ratio := rate / incidence
			if ratio <= minRatio || userCount < minUserWordCount {
				continue
			}
			report.Users = append(report.Users, models.UserRatio{
				User:         u,
				Ratio:        ratio,
				Rate:         rate,
				Count:        userCount,
				Total:        userTotal,
				SharePercent: 100 * float64(userCount) / float64(count),
				Strong:       ratio > strongRatio,
			})
		}
		reports = append(reports, report)
	}
	return reports
}

// ComputeWordShare lists each user's words, messages and share of all words.
func ComputeWordShare(ws *models.WordStats) []models.WordShare {
	users := ws.Users()
	shares := make([]models.WordShare, 0, len(users))
	for _, u := range users {
		share := models.WordShare{
			User:     u,
			Words:    ws.UserTotals[u],
			Messages: ws.Messages[u],
		}
		if ws.Total > 0 {
			share.Percent = 100 * float64(share.Words) / float64(ws.Total)
		}
		shares = append(shares, share)
	}
	return shares
}

// ComputePosters orders users by ascending message count.
func ComputePosters(ws *models.WordStats) []models.PosterCount {
	posters := make([]models.PosterCount, 0, len(ws.Messages))
	for u, c := range ws.Messages {
		posters = append(posters, models.PosterCount{User: u, Messages: c})
	}
	sort.Slice(posters, func(i, j int) bool {
		if posters[i].Messages != posters[j].Messages {
			return posters[i].Messages < posters[j].Messages
		}
		return posters[i].User < posters[j].User
	})
	return posters
}

func BuildChannelReport(channel string, totalMessages int, ws *models.WordStats) *models.ChannelReport {
	return &models.ChannelReport{
		Channel:            channel,
		TotalMessages:      totalMessages,
		TotalWords:         ws.Total,
		Posters:            ComputePosters(ws),
		Overrepresentation: ComputeOverrepresentation(ws),
		WordShare:          ComputeWordShare(ws),
	}
}

// Package report renders simulation snapshots into the text, CSV, and JSON
// artifacts consumed outside the engine.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/strayhat/pushjack/internal/fileutil"
	"github.com/strayhat/pushjack/internal/game"
	"github.com/strayhat/pushjack/internal/sim"
	"github.com/strayhat/pushjack/internal/stats"
)

// matrix rows and columns run from the lowest two-card total to the capped
// bust ceiling.
const (
	minTotal = 4
	maxTotal = 30
)

// Summary renders the human-readable results summary shared by stdout and
// the summary file.
func Summary(cfg sim.Config, snap stats.Snapshot) string {
	pct := func(n int) float64 {
		return 100 * float64(n) / float64(snap.Rounds)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Simulation Results\n")
	fmt.Fprintf(&b, "==================\n\n")
	fmt.Fprintf(&b, "Config: %s\n\n", cfg)
	fmt.Fprintf(&b, "Total rounds:  %d\n", snap.Rounds)
	fmt.Fprintf(&b, "Elapsed:       %.2fs (%.0f rounds/s)\n\n", snap.Elapsed.Seconds(), snap.RoundsPerSecond())
	fmt.Fprintf(&b, "Bettor wins:   %d (%.2f%%)\n", snap.BettorWins, pct(snap.BettorWins))
	fmt.Fprintf(&b, "Bettor losses: %d (%.2f%%)\n", snap.BettorLosses, pct(snap.BettorLosses))
	fmt.Fprintf(&b, "Pushes:        %d (%.2f%%)\n\n", snap.Pushes, pct(snap.Pushes))
	fmt.Fprintf(&b, "Player busts:      %d (%.2f%%)\n", snap.PlayerBusts, pct(snap.PlayerBusts))
	fmt.Fprintf(&b, "Dealer busts:      %d (%.2f%%)\n", snap.DealerBusts, pct(snap.DealerBusts))
	fmt.Fprintf(&b, "Player blackjacks: %d (%.2f%%)\n", snap.PlayerBlackjacks, pct(snap.PlayerBlackjacks))
	fmt.Fprintf(&b, "Dealer blackjacks: %d (%.2f%%)\n\n", snap.DealerBlackjacks, pct(snap.DealerBlackjacks))
	fmt.Fprintf(&b, "House edge: %.4f%%\n", snap.HouseEdge)

	if cfg.SidebetMode != game.SidebetOff {
		fmt.Fprintf(&b, "\nPush side-wager (%s mode)\n", cfg.SidebetMode)
		fmt.Fprintf(&b, "-------------------------\n")
		if cfg.SidebetMode == game.SidebetTotals {
			for _, cat := range game.Categories {
				count := snap.PushCategories[cat]
				fmt.Fprintf(&b, "%-20s %d (%.2f%%)\n", cat.String()+":", count, pct(count))
			}
		} else {
			for bucket := minPushCards; bucket <= game.MaxCardBucket; bucket++ {
				count := snap.PushCardCounts[bucket]
				fmt.Fprintf(&b, "%-20s %d (%.2f%%)\n", game.CardBucketLabel(bucket)+" cards:", count, pct(count))
			}
		}
		fmt.Fprintf(&b, "\nSide-bet edge: %.4f%%\n", snap.SidebetEdge)
	}
	return b.String()
}

// the shortest possible push deals two cards to each side.
const minPushCards = 4

// WriteSummary writes the text summary atomically.
func WriteSummary(path string, cfg sim.Config, snap stats.Snapshot) error {
	return fileutil.WriteFileAtomic(path, []byte(Summary(cfg, snap)), 0644)
}

// WriteOutcomeMatrixCSV writes the player-total x dealer-total frequency
// matrix.
func WriteOutcomeMatrixCSV(path string, snap stats.Snapshot) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, maxTotal-minTotal+2)
	header = append(header, `Player\Dealer`)
	for d := minTotal; d <= maxTotal; d++ {
		header = append(header, strconv.Itoa(d))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for p := minTotal; p <= maxTotal; p++ {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(p))
		for d := minTotal; d <= maxTotal; d++ {
			row = append(row, strconv.Itoa(snap.Outcomes[stats.OutcomeKey{Player: p, Dealer: d}]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0644)
}

// WritePushMatrixCSV writes the push category x card-count cross-tabulation.
func WritePushMatrixCSV(path string, snap stats.Snapshot) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{`Category\Cards`}
	for bucket := minPushCards; bucket <= game.MaxCardBucket; bucket++ {
		header = append(header, game.CardBucketLabel(bucket))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, cat := range game.Categories {
		row := []string{cat.String()}
		for bucket := minPushCards; bucket <= game.MaxCardBucket; bucket++ {
			key := stats.PushKey{Category: cat, CardBucket: bucket}
			row = append(row, strconv.Itoa(snap.PushDetail[key]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0644)
}

// jsonReport is the serializable shape of a finished run. Matrix keys are
// flattened into rows since JSON objects cannot key on structs.
type jsonReport struct {
	GeneratedAt      time.Time       `json:"generated_at"`
	Config           string          `json:"config"`
	Rounds           int             `json:"rounds"`
	BettorWins       int             `json:"bettor_wins"`
	BettorLosses     int             `json:"bettor_losses"`
	Pushes           int             `json:"pushes"`
	PlayerBusts      int             `json:"player_busts"`
	DealerBusts      int             `json:"dealer_busts"`
	PlayerBlackjacks int             `json:"player_blackjacks"`
	DealerBlackjacks int             `json:"dealer_blackjacks"`
	NetWinUnits      float64         `json:"net_win_units"`
	HouseEdgePct     float64         `json:"house_edge_pct"`
	SidebetPayouts   float64         `json:"sidebet_payouts"`
	SidebetEdgePct   float64         `json:"sidebet_edge_pct"`
	ElapsedSeconds   float64         `json:"elapsed_seconds"`
	Outcomes         []outcomeRow    `json:"outcomes"`
	PushCategories   map[string]int  `json:"push_categories"`
	PushCardCounts   map[string]int  `json:"push_card_counts"`
	PushDetail       []pushDetailRow `json:"push_detail"`
}

type outcomeRow struct {
	Player  int    `json:"player"`
	Dealer  int    `json:"dealer"`
	Outcome string `json:"outcome"`
	Count   int    `json:"count"`
}

type pushDetailRow struct {
	Category string `json:"category"`
	Cards    string `json:"cards"`
	Count    int    `json:"count"`
}

// WriteJSON writes the full results record atomically.
func WriteJSON(path string, cfg sim.Config, snap stats.Snapshot) error {
	r := jsonReport{
		GeneratedAt:      time.Now().UTC(),
		Config:           cfg.String(),
		Rounds:           snap.Rounds,
		BettorWins:       snap.BettorWins,
		BettorLosses:     snap.BettorLosses,
		Pushes:           snap.Pushes,
		PlayerBusts:      snap.PlayerBusts,
		DealerBusts:      snap.DealerBusts,
		PlayerBlackjacks: snap.PlayerBlackjacks,
		DealerBlackjacks: snap.DealerBlackjacks,
		NetWinUnits:      snap.NetWin,
		HouseEdgePct:     snap.HouseEdge,
		SidebetPayouts:   snap.SidebetPayouts,
		SidebetEdgePct:   snap.SidebetEdge,
		ElapsedSeconds:   snap.Elapsed.Seconds(),
		PushCategories:   make(map[string]int, len(snap.PushCategories)),
		PushCardCounts:   make(map[string]int, len(snap.PushCardCounts)),
	}

	for key, count := range snap.Details {
		r.Outcomes = append(r.Outcomes, outcomeRow{
			Player:  key.Player,
			Dealer:  key.Dealer,
			Outcome: key.Outcome.String(),
			Count:   count,
		})
	}
	sort.Slice(r.Outcomes, func(i, j int) bool {
		a, b := r.Outcomes[i], r.Outcomes[j]
		if a.Player != b.Player {
			return a.Player < b.Player
		}
		if a.Dealer != b.Dealer {
			return a.Dealer < b.Dealer
		}
		return a.Outcome < b.Outcome
	})

	for cat, count := range snap.PushCategories {
		r.PushCategories[cat.String()] = count
	}
	for bucket, count := range snap.PushCardCounts {
		r.PushCardCounts[game.CardBucketLabel(bucket)] = count
	}
	for key, count := range snap.PushDetail {
		r.PushDetail = append(r.PushDetail, pushDetailRow{
			Category: key.Category.String(),
			Cards:    game.CardBucketLabel(key.CardBucket),
			Count:    count,
		})
	}
	sort.Slice(r.PushDetail, func(i, j int) bool {
		a, b := r.PushDetail[i], r.PushDetail[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Cards < b.Cards
	})

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal results: %w", err)
	}
	return fileutil.WriteFileAtomic(path, data, 0644)
}

// WriteAll writes every report artifact into dir with a shared timestamped
// prefix, creating the directory if needed. It returns the written paths.
func WriteAll(dir, prefix string, cfg sim.Config, snap stats.Snapshot) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("report: create output dir: %w", err)
	}
	stamp := time.Now().Format("20060102_150405")

	paths := []string{
		filepath.Join(dir, fmt.Sprintf("%s_summary_%s.txt", prefix, stamp)),
		filepath.Join(dir, fmt.Sprintf("%s_matrix_%s.csv", prefix, stamp)),
		filepath.Join(dir, fmt.Sprintf("%s_push_matrix_%s.csv", prefix, stamp)),
		filepath.Join(dir, fmt.Sprintf("%s_results_%s.json", prefix, stamp)),
	}
	if err := WriteSummary(paths[0], cfg, snap); err != nil {
		return nil, err
	}
	if err := WriteOutcomeMatrixCSV(paths[1], snap); err != nil {
		return nil, err
	}
	if err := WritePushMatrixCSV(paths[2], snap); err != nil {
		return nil, err
	}
	if err := WriteJSON(paths[3], cfg, snap); err != nil {
		return nil, err
	}
	return paths, nil
}

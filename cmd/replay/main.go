package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"holdem-server/internal/config"
	"holdem-server/pkg/action"
	"holdem-server/pkg/actionlog"
	"holdem-server/pkg/db"

	"github.com/pterm/pterm"
)

const queryTimeout = time.Second * 10

var handID = flag.String("hand", "", "the hand to replay (default: the most recent hand)")

func main() {
	flag.Parse()

	dbh, err := db.Open(config.Instance().PGDSN)
	if err != nil {
		pterm.Error.Printfln("could not connect to database: %v", err)
		os.Exit(1)
	}
	defer dbh.Close()

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := replay(ctx, actionlog.NewStore(dbh), *handID); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func replay(ctx context.Context, store *actionlog.Store, id string) error {
	if id == "" {
		latest, err := store.LatestHandID(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return errors.New("the action log is empty")
		} else if err != nil {
			return err
		}

		id = latest
	}

	entries, err := store.ListByHand(ctx, id)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return fmt.Errorf("no actions found for hand %s", id)
	}

	pterm.DefaultSection.Printfln("Hand #%d (%s)", entries[0].HandNumber, id)
	if err := pterm.DefaultTable.WithHasHeader().WithData(buildTable(entries)).Render(); err != nil {
		return err
	}

	pterm.Info.Printfln("%d actions, %s committed", len(entries), action.FormatChips(totalCommitted(entries)))
	return nil
}

func buildTable(entries []*actionlog.Entry) pterm.TableData {
	data := pterm.TableData{
		{"#", "Time", "Stage", "Player", "Action", "Status"},
	}

	for i, e := range entries {
		kind := e.Kind
		if a, err := action.FromString(e.Kind); err == nil {
			kind = a.LogMessage(e.Amount)
		}

		data = append(data, []string{
			strconv.Itoa(i + 1),
			e.Created.Format("15:04:05"),
			e.Stage,
			e.PlayerID,
			kind,
			e.Status,
		})
	}

	return data
}

func totalCommitted(entries []*actionlog.Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Amount
	}

	return total
}

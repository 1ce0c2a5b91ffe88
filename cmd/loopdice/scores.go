package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/loopdice/internal/registry"
	"github.com/vovakirdan/loopdice/internal/storage"
)

var (
	flagScoresRecent bool
	flagScoresAll    bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the session ledger for a variant",
	Long: `Display the ten best recorded sessions for a variant, ranked by final
balance, followed by aggregate figures.

Examples:
  loopdice scores
  loopdice scores classic
  loopdice scores --recent
  loopdice scores --all
  loopdice scores loop_rigged --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List the latest sessions of every variant")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show aggregate figures for every variant")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded sessions of the variant")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresRecent:
		printRecentSessions(store)
		return
	case flagScoresAll:
		printAllStats(store)
		return
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	gameID, err := resolveGameID(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'loopdice list' to see available variants.")
		return
	}
	info, _ := registry.Info(gameID)

	if flagScoresClear {
		if err := store.ClearSessions(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing sessions: %v\n", err)
			return
		}
		logger.Info("ledger cleared", "game", gameID)
		return
	}

	sessions, err := store.TopSessions(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		return
	}

	fmt.Printf("Ledger - %s\n", info.Title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'loopdice play %s' to start one.\n", gameID)
		return
	}

	rows := make([][]string, 0, len(sessions))
	for i, s := range sessions {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Player,
			strconv.Itoa(s.Balance),
			fmt.Sprintf("%+d", s.Net()),
			strconv.Itoa(s.Rounds),
			s.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	fmt.Println(newTable([]string{"#", "Player", "Balance", "Net", "Rounds", "Date"}, rows, nil))

	stats, err := store.GetGameStats(gameID)
	if err != nil || stats == nil {
		return
	}
	fmt.Println()
	fmt.Printf("Sessions: %d  Rounds: %d  Best net: %+d  Worst net: %+d  Avg net: %+.0f\n",
		stats.Sessions, stats.Rounds, stats.BestNet, stats.WorstNet, stats.AvgNet)
}

func printRecentSessions(store *storage.Store) {
	sessions, err := store.RecentSessions(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.Variant,
			s.Player,
			strconv.Itoa(s.Balance),
			fmt.Sprintf("%+d", s.Net()),
			strconv.Itoa(s.Rounds),
		})
	}
	fmt.Println(newTable([]string{"Date", "Variant", "Player", "Balance", "Net", "Rounds"}, rows, nil))
}

func printAllStats(store *storage.Store) {
	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		st := all[id]
		title := id
		if info, ok := registry.Info(id); ok {
			title = info.Title
		}
		rows = append(rows, []string{
			title,
			strconv.Itoa(st.Sessions),
			strconv.Itoa(st.Rounds),
			fmt.Sprintf("%+d", st.BestNet),
			fmt.Sprintf("%+d", st.WorstNet),
			fmt.Sprintf("%+.0f", st.AvgNet),
			st.LastPlayed.Format("2006-01-02 15:04"),
		})
	}
	fmt.Println(newTable([]string{"Variant", "Sessions", "Rounds", "Best", "Worst", "Avg", "Last played"}, rows, nil))
}

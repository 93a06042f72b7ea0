package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/trajopt/internal/analysis"
	"github.com/san-kum/trajopt/internal/config"
	"github.com/san-kum/trajopt/internal/export"
	"github.com/san-kum/trajopt/internal/metrics"
	"github.com/san-kum/trajopt/internal/ocp"
	"github.com/san-kum/trajopt/internal/solve"
	"github.com/san-kum/trajopt/internal/store"
	"github.com/san-kum/trajopt/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	integrator string
	steps      int
	jsonOut    string
	maxPlots   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trajopt",
		Short: "multi-phase trajectory rollout lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".trajopt", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "roll out a configured problem and store the trajectory",
		RunE:  runProblem,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "problem description file (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use a built-in problem")
	runCmd.Flags().StringVar(&integrator, "integrator", "", "override the configured integrator")
	runCmd.Flags().IntVar(&steps, "steps", 0, "override sub-steps per shooting interval")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also export the run as JSON to this path (- for stdout)")

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "show the decision-variable layout of a problem",
		RunE:  showLayout,
	}
	layoutCmd.Flags().StringVar(&configFile, "config", "", "problem description file (yaml)")
	layoutCmd.Flags().StringVar(&preset, "preset", "", "use a built-in problem")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&maxPlots, "max", 6, "maximum rows to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored trajectory to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [path]",
		Short: "render a stored trajectory as SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-18s %d phase(s)\n", name, len(cfg.Phases))
			}
			return nil
		},
	}

	kindsCmd := &cobra.Command{
		Use:   "kinds",
		Short: "list dynamics kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			for k := ocp.TorqueDriven; k <= ocp.Custom; k++ {
				fmt.Printf("  %s\n", k)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default problem description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive playback viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.AddCommand(runCmd, layoutCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, analyzeCmd, presetsCmd, kindsCmd, initCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, string, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return cfg, preset, nil
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, "custom", nil
	}
	return config.DefaultConfig(), "default", nil
}

func runProblem(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig()
	if err != nil {
		return err
	}
	if integrator != "" {
		cfg.Integrator = integrator
	}
	if steps > 0 {
		cfg.StepsPerInterval = steps
	}

	prob, err := cfg.BuildProblem()
	if err != nil {
		return err
	}
	inputs, err := cfg.RolloutInputs(prob)
	if err != nil {
		return err
	}
	opts, err := cfg.RolloutOptions()
	if err != nil {
		return err
	}

	fmt.Printf("rolling out %s (%d phase(s))...\n", name, prob.NbPhases())
	start := time.Now()

	res, err := solve.Rollout(context.Background(), prob, inputs, nil, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	states, err := res.MergedStates(cfg.Merge.Phases, cfg.Merge.Nodes)
	if err != nil {
		return err
	}
	times, err := res.MergedTimes(cfg.Merge.Phases, cfg.Merge.Nodes)
	if err != nil {
		return err
	}
	labels := stateLabels(prob)

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(name, prob, cfg.Integrator, times, states, labels)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(times))
	for _, ph := range prob.Phases() {
		fmt.Printf("  %s\n", ph)
	}

	ms := []metrics.Metric{metrics.NewPeakState(), metrics.NewDisplacement()}
	metrics.ObserveTrajectory(ms, times, states, nil)
	fmt.Println("\nmetrics:")
	for _, m := range ms {
		fmt.Printf("  %s: %.6f\n", m.Name(), m.Value())
	}

	if jsonOut != "" {
		named, err := res.NamedStates(cfg.Merge.Phases, cfg.Merge.Nodes)
		if err != nil {
			return err
		}
		data := store.NewExportData(prob, cfg.Integrator, times, states, labels, named)
		if jsonOut == "-" {
			if err := store.WriteJSON(os.Stdout, data); err != nil {
				return err
			}
		} else {
			if err := store.ExportJSON(jsonOut, data); err != nil {
				return err
			}
			fmt.Printf("exported: %s\n", jsonOut)
		}
	}
	return nil
}

// stateLabels flattens the first phase's state placeholders into row
// labels for the merged matrix.
func stateLabels(prob *ocp.Problem) []string {
	var labels []string
	for _, e := range prob.Phase(0).States().Entries() {
		labels = append(labels, e.Reduced.Names()...)
	}
	return labels
}

func showLayout(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig()
	if err != nil {
		return err
	}
	prob, err := cfg.BuildProblem()
	if err != nil {
		return err
	}

	fmt.Printf("problem: %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHASE\tROLE\tNAME\tRANGE\tWIDTH\tDECISION")

	for _, ph := range prob.Phases() {
		for _, e := range ph.States().Entries() {
			fmt.Fprintf(w, "%s\tstate\t%s\t[%d,%d)\t%d\t%d\n",
				ph.Name(), e.Name, e.Start, e.End, e.Width(), e.DecisionWidth())
		}
		for _, e := range ph.Controls().Entries() {
			fmt.Fprintf(w, "%s\tcontrol\t%s\t[%d,%d)\t%d\t%d\n",
				ph.Name(), e.Name, e.Start, e.End, e.Width(), e.DecisionWidth())
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if contacts := prob.ContactNames(); len(contacts) > 0 {
		fmt.Printf("\ncontact legend: %v\n", contacts)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPHASES\tINTEG\tROWS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Phases),
			run.Integrator,
			len(run.Labels),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	_, states, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(states[0]))

	rows := len(states)
	if rows > maxPlots {
		rows = maxPlots
	}
	for r := 0; r < rows; r++ {
		caption := fmt.Sprintf("x%d vs time", r)
		if r < len(meta.Labels) {
			caption = meta.Labels[r] + " vs time"
		}
		graph := asciigraph.Plot(states[r],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	doc := export.TrajectorySVG(times, states, meta.Labels, 900, 420)
	if err := export.WriteSVG(args[1], doc); err != nil {
		return err
	}
	fmt.Printf("rendered: %s\n", args[1])
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 || len(times) < 2 {
		return fmt.Errorf("no data")
	}

	duration := times[len(times)-1] - times[0]
	label := "x0"
	if len(meta.Labels) > 0 {
		label = meta.Labels[0]
	}
	fmt.Printf("frequency analysis: %s (%s)\n\n", meta.ID, label)

	ps := analysis.PowerSpectrum(analysis.PadPow2(states[0]))
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+label+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	rate := float64(len(times)-1) / duration
	freq, _ := analysis.DominantFrequency(ps, rate)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := append([]string{"time"}, meta.Labels...)
	if err := w.Write(header); err != nil {
		return err
	}
	for c := range times {
		row := []string{strconv.FormatFloat(times[c], 'f', 6, 64)}
		for r := range states {
			row = append(row, strconv.FormatFloat(states[r][c], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizsmith/quizsmith/internal/completion"
)

var runCmd = &cobra.Command{
	Use:   "run <task> [file]",
	Short: "Run one completion task locally and print the JSON result",
	Long: `Run a completion task without the HTTP server.

Tasks: generate-multiple-choice, generate-short-answer, analyze-weaknesses,
solve-problems (purposes such as "solution" also work).

Input is read from file, or stdin when file is omitted or "-". Plain text is
wrapped as {"text": ...}; use --json to pass a request body as-is (required
for analyze-weaknesses).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTask,
}

func init() {
	runCmd.Flags().Int("count", 0, "questionCount for generate-multiple-choice (5, 10 or 15)")
	runCmd.Flags().Bool("json", false, "Treat input as a raw JSON request body")
}

func runTask(cmd *cobra.Command, args []string) error {
	task, ok := completion.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown task %q", args[0])
	}

	path := "-"
	if len(args) == 2 {
		path = args[1]
	}
	input, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetBool("json")
	count, _ := cmd.Flags().GetInt("count")
	body, err := requestBody(input, raw, count)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	repo, closeRepo, err := openRecorder(cmd)
	if err != nil {
		return err
	}
	defer closeRepo()

	ctx := cmd.Context()
	provider, err := newProvider(ctx, cmd, repo, log)
	if err != nil {
		return err
	}

	result, err := completion.NewRunner(provider, log).Run(ctx, task, body)
	if err != nil {
		return fmt.Errorf("%s", completion.PublicMessage(err))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

// requestBody builds the JSON body for a task from CLI input.
func requestBody(input []byte, raw bool, count int) ([]byte, error) {
	if raw {
		return input, nil
	}
	req := map[string]any{"text": strings.TrimRight(string(input), "\n")}
	if count != 0 {
		req["questionCount"] = count
	}
	return json.Marshal(req)
}

// readInput reads path, or the command's stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

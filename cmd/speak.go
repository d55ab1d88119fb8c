package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/toeicz/internal/narration"
	"github.com/abhisek/toeicz/internal/questionbank"
)

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Read text or a listening question aloud",
	Long: "Read text aloud with the configured text-to-speech program, or read the\n" +
		"script of a bank question with --part and --id. Useful for checking speech setup.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		text := strings.Join(args, " ")
		if id, _ := cmd.Flags().GetString("id"); id != "" {
			n, _ := cmd.Flags().GetInt("part")
			part := questionbank.Part(n)
			q, ok := e.bank.Lookup(part, questionbank.QuestionID(id))
			if !ok {
				return fmt.Errorf("no question %q in %s", id, part.DisplayName())
			}
			text = narration.Text(part, q)
		}
		if text == "" {
			return errors.New("nothing to say: pass text, or --part and --id of a listening question")
		}

		rate, err := e.cfg.SpeechRate()
		if err != nil {
			return err
		}
		if r, _ := cmd.Flags().GetString("rate"); r != "" {
			if rate, err = narration.ParseRate(r); err != nil {
				return err
			}
		}

		backend := narration.Detect(e.cfg.Speech.Command, e.cfg.Speech.Voice, e.logger)
		fmt.Fprintf(cmd.OutOrStdout(), "Speaking with %s at %s (%d wpm)\n", backend.Name(), rate, rate.WPM())
		return backend.Speak(cmd.Context(), text, rate)
	},
}

func init() {
	speakCmd.Flags().Int("part", 1, "Part of the question to read")
	speakCmd.Flags().String("id", "", "ID of the question to read")
	speakCmd.Flags().String("rate", "", "Speech rate: slow, normal, fast or a multiplier")
}

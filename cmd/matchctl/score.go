package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/artem13815/resumematch/pkg/analysis"
	"github.com/artem13815/resumematch/pkg/logger"
	"github.com/artem13815/resumematch/pkg/nlp"
	"github.com/artem13815/resumematch/pkg/resume"
	"github.com/artem13815/resumematch/pkg/skill"
)

var (
	resumePath  string
	jdPath      string
	vocabPath   string
	headersPath string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description without a database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		resumeText, err := readDocument(resumePath)
		if err != nil {
			return err
		}
		jdText, err := readDocument(jdPath)
		if err != nil {
			return err
		}

		headers := nlp.DefaultHeaderConfig()
		if headersPath != "" {
			if headers, err = nlp.LoadHeaderConfigFile(headersPath); err != nil {
				return err
			}
		}

		var src io.Reader = skill.DefaultSeed()
		if vocabPath != "" {
			f, err := os.Open(vocabPath)
			if err != nil {
				return err
			}
			defer f.Close()
			src = f
		}
		vocab, rejected, err := skill.SeedVocabulary(src)
		if err != nil {
			return err
		}
		for _, r := range rejected {
			logger.Warn().Int("index", r.Index).Str("name", r.Name).Str("reason", r.Reason).Msg("vocabulary entry skipped")
		}

		rep, err := analysis.ScoreTexts(resumeText, jdText, headers, vocab)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	},
}

// readDocument extracts text from a pdf, docx or txt file. Other extensions
// are read as plain text.
func readDocument(path string) (string, error) {
	if path == "" {
		return "", errors.New("path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	name := filepath.Base(path)
	if !resume.SupportedExt(name) {
		name += ".txt"
	}
	return resume.ParseText(name, data)
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "resume file (pdf, docx, txt)")
	scoreCmd.Flags().StringVar(&jdPath, "jd", "", "job description file")
	scoreCmd.Flags().StringVar(&vocabPath, "vocab", "", "skills seed document (default is the built-in list)")
	scoreCmd.Flags().StringVar(&headersPath, "headers", "", "section header mapping (yaml)")
	_ = scoreCmd.MarkFlagRequired("resume")
	_ = scoreCmd.MarkFlagRequired("jd")
}

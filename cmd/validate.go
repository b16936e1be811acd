package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kraklabs/redymo/internal/config"
	"github.com/kraklabs/redymo/internal/provider"
)

var validateDataDir string

// validateCmd checks an organism's data directory for internal
// consistency without running any simulation: every chromosome descriptor
// parses, landscape lengths match chromosome lengths, and transcription
// regions and constitutive origins fall within bounds.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a data directory's chromosome descriptors without simulating",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&validateDataDir, "data-dir", "d", "", "Directory holding the organism's chromosome descriptors (required)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateDataDir == "" {
		return fmt.Errorf("validate: %w: data-dir", config.ErrConfigMissing)
	}

	p, err := provider.NewFileProvider(validateDataDir)
	if err != nil {
		return err
	}

	codes, err := p.Codes()
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		return fmt.Errorf("validate: manifest at %s lists no chromosome codes", validateDataDir)
	}

	var failures int
	for _, code := range codes {
		if err := validateChromosome(p, code); err != nil {
			log.Error().Str("chromosome", code).Err(err).Msg("invalid chromosome descriptor")
			failures++
			continue
		}
		log.Info().Str("chromosome", code).Msg("ok")
	}

	if failures > 0 {
		return fmt.Errorf("validate: %d of %d chromosome descriptors failed validation", failures, len(codes))
	}
	log.Info().Int("chromosomes", len(codes)).Msg("all chromosome descriptors valid")
	return nil
}

func validateChromosome(p provider.Provider, code string) error {
	length, err := p.Length(code)
	if err != nil {
		return err
	}
	if length <= 0 {
		return fmt.Errorf("length %d must be positive", length)
	}

	landscape, err := p.ProbabilityLandscape(code)
	if err != nil {
		return err
	}
	if len(landscape) != length {
		return fmt.Errorf("probability landscape has %d entries, want %d", len(landscape), length)
	}
	for i, prob := range landscape {
		if prob < 0 || prob > 1 {
			return fmt.Errorf("probability landscape[%d] = %v is out of [0,1]", i, prob)
		}
	}

	regions, err := p.TranscriptionRegions(code)
	if err != nil {
		return err
	}
	for i, region := range regions {
		if region.Start < 0 || region.End > length || region.Start > region.End {
			return fmt.Errorf("transcription region %d [%d,%d) is out of bounds for length %d", i, region.Start, region.End, length)
		}
	}

	origins, err := p.ConstitutiveOrigins(code)
	if err != nil {
		return err
	}
	for i, origin := range origins {
		if origin.Base < 0 || origin.Base >= length {
			return fmt.Errorf("constitutive origin %d at base %d is out of bounds for length %d", i, origin.Base, length)
		}
	}

	return nil
}

package configloader

import "github.com/yaklabco/gomdparse/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if non-nil, so false can win
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.DetectLanguages != nil {
		result.DetectLanguages = config.Bool(*override.DetectLanguages)
	}

	if override.HTML.HeadingIDs != nil {
		result.HTML.HeadingIDs = config.Bool(*override.HTML.HeadingIDs)
	}
	if override.HTML.Safe != nil {
		result.HTML.Safe = config.Bool(*override.HTML.Safe)
	}

	if override.Serve.Addr != "" {
		result.Serve.Addr = override.Serve.Addr
	}
	if override.Serve.MaxBodyBytes != 0 {
		result.Serve.MaxBodyBytes = override.Serve.MaxBodyBytes
	}

	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.Format != "" {
		result.Log.Format = override.Log.Format
	}

	if override.Backups.Enabled != nil {
		result.Backups.Enabled = config.Bool(*override.Backups.Enabled)
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.DisabledParsers != nil {
		result.DisabledParsers = append([]string(nil), override.DisabledParsers...)
	}
	if override.Extensions != nil {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

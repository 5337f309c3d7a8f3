// Package cli provides the command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmorand/promptctx/internal/commands"
	"github.com/tmorand/promptctx/internal/config"
	"github.com/tmorand/promptctx/internal/policy"
	"github.com/tmorand/promptctx/internal/services/clipboard"
	"github.com/tmorand/promptctx/internal/tokenizer"
	"github.com/tmorand/promptctx/internal/utils"
)

const (
	rootFlagName        = "root"
	outFlagName         = "out"
	includeExtFlagName  = "include-ext"
	excludeExtFlagName  = "exclude-ext"
	excludeGlobFlagName = "exclude-glob"
	maxBytesFlagName    = "max-bytes"
	noGitignoreFlagName = "no-gitignore"
	copyFlagName        = "copy"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	configFlagName      = "config"
	versionFlagName     = "version"

	rootFlagDescription        = "project root directory to scan"
	outFlagDescription         = "output Markdown file name or path"
	includeExtFlagDescription  = "comma-separated extensions to include (acts as an allow-list when non-empty)"
	excludeExtFlagDescription  = "comma-separated extensions added to the built-in exclusion set"
	excludeGlobFlagDescription = "comma-separated glob patterns matched against relative paths"
	maxBytesFlagDescription    = "per-file byte cap before truncation (0 = unlimited)"
	noGitignoreFlagDescription = "do not apply the root .gitignore"
	copyFlagDescription        = "copy the generated document to the system clipboard"
	tokensFlagDescription      = "append a token estimate to the document and report"
	modelFlagDescription       = "tokenizer model used for the token estimate"
	configFlagDescription      = "configuration file path"
	versionFlagDescription     = "display application version"

	rootUse              = "promptctx"
	rootShortDescription = "generate a Markdown project context snapshot"
	rootLongDescription  = `promptctx walks a project tree, filters files by extension, glob, and binary
content, and writes one Markdown document containing the project tree plus the
contents of every included file, ready to paste into another tool.`
	rootUsageExample = `  # Snapshot the current directory
  promptctx

  # Only Python and SQL sources, capped at 64 KiB per file
  promptctx --include-ext py,sql --max-bytes 65536

  # Skip a data directory and copy the result to the clipboard
  promptctx --exclude-glob "data/**" --copy`

	versionTemplate = "promptctx version: %s\n"

	defaultRootPath       = "."
	defaultOutputFileName = "prompt_context.md"
	defaultTokenizerModel = "gpt-4o"

	// completionMessageFormat reports the written document, its size, and the file count.
	completionMessageFormat = "Wrote %s (%d files included, %s)"
	// completionTokensFormat extends the completion message with the token estimate.
	completionTokensFormat = "%s, ~%d tokens (%s)"
)

// scanOptions stores the values of every scan-related flag.
type scanOptions struct {
	rootPath          string
	outputPath        string
	includeExtensions string
	excludeExtensions string
	excludeGlobs      string
	maxBytes          int64
	noGitignore       bool
	copyToClipboard   bool
	countTokens       bool
	tokenModel        string
	configPath        string
}

// Execute runs the promptctx application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command carrying every scan flag.
func createRootCommand() *cobra.Command {
	var options scanOptions
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			return runGenerate(command, options)
		},
	}

	rootCommand.Flags().StringVar(&options.rootPath, rootFlagName, defaultRootPath, rootFlagDescription)
	rootCommand.Flags().StringVar(&options.outputPath, outFlagName, defaultOutputFileName, outFlagDescription)
	rootCommand.Flags().StringVar(&options.includeExtensions, includeExtFlagName, "", includeExtFlagDescription)
	rootCommand.Flags().StringVar(&options.excludeExtensions, excludeExtFlagName, "", excludeExtFlagDescription)
	rootCommand.Flags().StringVar(&options.excludeGlobs, excludeGlobFlagName, "", excludeGlobFlagDescription)
	rootCommand.Flags().Int64Var(&options.maxBytes, maxBytesFlagName, 0, maxBytesFlagDescription)
	rootCommand.Flags().BoolVar(&options.noGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	rootCommand.Flags().BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().BoolVar(&options.countTokens, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenModel, modelFlagName, defaultTokenizerModel, modelFlagDescription)
	rootCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	return rootCommand
}

// runGenerate resolves configuration, runs the generation, and logs the outcome.
// Command-line flags take precedence over configuration file values, which take
// precedence over built-in defaults.
func runGenerate(command *cobra.Command, options scanOptions) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		RootDirectory:    options.rootPath,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}

	generateOptions := buildGenerateOptions(command, options, applicationConfiguration)

	if tokenCountingEnabled(command, options, applicationConfiguration) {
		tokenCounter, resolvedModelName, counterError := tokenizer.NewCounter(tokenizer.Config{Model: generateOptions.TokenModel})
		if counterError != nil {
			return counterError
		}
		generateOptions.TokenCounter = tokenCounter
		generateOptions.TokenModel = resolvedModelName
	}

	runSummary, generateError := commands.Generate(generateOptions)
	if generateError != nil {
		return generateError
	}

	applicationLogger, loggerError := utils.NewApplicationLogger()
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	defer applicationLogger.Sync()

	completionMessage := fmt.Sprintf(completionMessageFormat, runSummary.OutputPath, runSummary.IncludedFiles, utils.FormatFileSize(runSummary.DocumentBytes))
	if runSummary.TokensCounted {
		completionMessage = fmt.Sprintf(completionTokensFormat, completionMessage, runSummary.Tokens, runSummary.Model)
	}
	applicationLogger.Info(completionMessage)
	return nil
}

// buildGenerateOptions merges flags over configuration file values over defaults.
func buildGenerateOptions(command *cobra.Command, options scanOptions, applicationConfiguration config.ApplicationConfiguration) commands.GenerateOptions {
	generateOptions := commands.GenerateOptions{
		RootPath:          options.rootPath,
		OutputPath:        options.outputPath,
		IncludeExtensions: policy.ParseCommaList(options.includeExtensions),
		ExcludeExtensions: policy.ParseCommaList(options.excludeExtensions),
		ExcludeGlobs:      policy.ParseCommaList(options.excludeGlobs),
		MaxBytes:          options.maxBytes,
		UseGitignore:      !options.noGitignore,
		TokenModel:        options.tokenModel,
	}

	if !command.Flags().Changed(outFlagName) && applicationConfiguration.Output != "" {
		generateOptions.OutputPath = applicationConfiguration.Output
	}
	if !command.Flags().Changed(maxBytesFlagName) && applicationConfiguration.MaxBytes != nil {
		generateOptions.MaxBytes = *applicationConfiguration.MaxBytes
	}
	if !command.Flags().Changed(includeExtFlagName) && len(applicationConfiguration.IncludeExtensions) > 0 {
		generateOptions.IncludeExtensions = applicationConfiguration.IncludeExtensions
	}
	if !command.Flags().Changed(excludeExtFlagName) && len(applicationConfiguration.ExcludeExtensions) > 0 {
		generateOptions.ExcludeExtensions = applicationConfiguration.ExcludeExtensions
	}
	if !command.Flags().Changed(excludeGlobFlagName) && len(applicationConfiguration.ExcludeGlobs) > 0 {
		generateOptions.ExcludeGlobs = applicationConfiguration.ExcludeGlobs
	}
	if !command.Flags().Changed(noGitignoreFlagName) && applicationConfiguration.UseGitignore != nil {
		generateOptions.UseGitignore = *applicationConfiguration.UseGitignore
	}
	if !command.Flags().Changed(modelFlagName) && applicationConfiguration.Tokens.Model != "" {
		generateOptions.TokenModel = applicationConfiguration.Tokens.Model
	}

	if clipboardEnabled(command, options, applicationConfiguration) {
		generateOptions.ClipboardCopier = clipboard.NewService()
	}

	return generateOptions
}

// tokenCountingEnabled resolves the --tokens flag against the configuration file.
func tokenCountingEnabled(command *cobra.Command, options scanOptions, applicationConfiguration config.ApplicationConfiguration) bool {
	if command.Flags().Changed(tokensFlagName) {
		return options.countTokens
	}
	if applicationConfiguration.Tokens.Enabled != nil {
		return *applicationConfiguration.Tokens.Enabled
	}
	return options.countTokens
}

// clipboardEnabled resolves the --copy flag against the configuration file.
func clipboardEnabled(command *cobra.Command, options scanOptions, applicationConfiguration config.ApplicationConfiguration) bool {
	if command.Flags().Changed(copyFlagName) {
		return options.copyToClipboard
	}
	if applicationConfiguration.Clipboard != nil {
		return *applicationConfiguration.Clipboard
	}
	return options.copyToClipboard
}

package clone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/templatesync/internal/execshell"
	"github.com/temirov/templatesync/internal/shared"
)

const (
	// DefaultWorkerCount bounds concurrent git invocations when configuration does not override it.
	DefaultWorkerCount = 10

	cloneRootPermissionsConstant          = fs.FileMode(0o755)
	gitCloneSubcommandConstant            = "clone"
	gitPullSubcommandConstant             = "pull"
	gitDirectoryFlagConstant              = "-C"
	gitTerminalPromptEnvironmentConstant  = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledConstant     = "0"
	statusLineFormatConstant              = "%s"
	cloneRootErrorTemplateConstant        = "unable to create clone root %s: %w"
	urlListOpenErrorTemplateConstant      = "unable to open repository list %s: %w"
	urlListReadErrorTemplateConstant      = "unable to read repository list %s: %w"
	dispatchErrorTemplateConstant         = "repository processing interrupted: %w"
	repositoryListLoadedMessageConstant   = "repository list loaded"
	repositoryInvalidMessageConstant      = "repository URL rejected"
	repositoryDuplicateMessageConstant    = "repository target already claimed"
	repositoryPullFailedMessageConstant   = "repository pull failed"
	repositoryCloneFailedMessageConstant  = "repository clone failed"
	repositoryRunCompletedMessageConstant = "repository synchronization completed"
	logFieldURLCountConstant              = "url_count"
	logFieldWorkerCountConstant           = "workers"
	logFieldRepositoryURLConstant         = "repository_url"
	logFieldDirectoryConstant             = "directory"
	logFieldAttemptedConstant             = "attempted"
)

var (
	// ErrFileSystemNotConfigured indicates the service was constructed without a filesystem.
	ErrFileSystemNotConfigured = errors.New("clone service requires a filesystem")
	// ErrGitExecutorNotConfigured indicates the service was constructed without a git executor.
	ErrGitExecutorNotConfigured = errors.New("clone service requires a git executor")
)

// Options configures one bulk clone run.
type Options struct {
	URLListPath string
	CloneRoot   string
	Workers     int
	Naming      NamingScheme
}

// Service clones or updates every repository listed in a URL file.
type Service struct {
	logger      *zap.Logger
	fileSystem  shared.FileSystem
	gitExecutor shared.GitExecutor
	output      io.Writer
}

// NewService validates collaborators and constructs a Service.
func NewService(logger *zap.Logger, fileSystem shared.FileSystem, gitExecutor shared.GitExecutor, output io.Writer) (*Service, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if output == nil {
		output = io.Discard
	}
	return &Service{logger: logger, fileSystem: fileSystem, gitExecutor: gitExecutor, output: output}, nil
}

// Run reads the URL list and processes every distinct repository on a bounded worker pool.
// Status lines are written in completion order. Per-repository failures are reported as outcomes, not errors.
func (service *Service) Run(executionContext context.Context, options Options) (Summary, error) {
	workerCount := options.Workers
	if workerCount < 1 {
		workerCount = DefaultWorkerCount
	}

	if mkdirError := service.fileSystem.MkdirAll(options.CloneRoot, cloneRootPermissionsConstant); mkdirError != nil {
		return Summary{}, fmt.Errorf(cloneRootErrorTemplateConstant, options.CloneRoot, mkdirError)
	}

	repositoryURLs, readError := service.readRepositoryURLs(options.URLListPath)
	if readError != nil {
		return Summary{}, readError
	}

	service.logger.Info(
		repositoryListLoadedMessageConstant,
		zap.Int(logFieldURLCountConstant, len(repositoryURLs)),
		zap.Int(logFieldWorkerCountConstant, workerCount),
	)

	reporter := shared.NewWriterReporter(service.output)
	summary := Summary{}

	targets, rejectedResults := service.planTargets(repositoryURLs, options.CloneRoot, options.Naming)
	for _, rejected := range rejectedResults {
		reporter.Printf(statusLineFormatConstant, rejected.StatusLine())
		summary.Results = append(summary.Results, rejected)
	}

	resultChannel := make(chan Result)
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for result := range resultChannel {
			reporter.Printf(statusLineFormatConstant, result.StatusLine())
			summary.Results = append(summary.Results, result)
		}
	}()

	workerGroup, workerContext := errgroup.WithContext(executionContext)
	workerGroup.SetLimit(workerCount)
	for _, target := range targets {
		workerGroup.Go(func() error {
			if contextError := workerContext.Err(); contextError != nil {
				return contextError
			}
			resultChannel <- service.processTarget(workerContext, target)
			return nil
		})
	}

	waitError := workerGroup.Wait()
	close(resultChannel)
	<-collectorDone

	service.logger.Info(repositoryRunCompletedMessageConstant, zap.Int(logFieldAttemptedConstant, summary.Attempted()))

	if waitError != nil {
		return summary, fmt.Errorf(dispatchErrorTemplateConstant, waitError)
	}
	return summary, nil
}

func (service *Service) readRepositoryURLs(urlListPath string) ([]string, error) {
	reader, openError := service.fileSystem.Open(urlListPath)
	if openError != nil {
		return nil, fmt.Errorf(urlListOpenErrorTemplateConstant, urlListPath, openError)
	}
	defer reader.Close()

	repositoryURLs, readError := ReadRepositoryURLs(reader)
	if readError != nil {
		return nil, fmt.Errorf(urlListReadErrorTemplateConstant, urlListPath, readError)
	}
	return repositoryURLs, nil
}

// planTargets resolves directories; the first URL claiming a directory keeps it.
func (service *Service) planTargets(repositoryURLs []string, cloneRoot string, scheme NamingScheme) ([]CloneTarget, []Result) {
	claimedDirectories := make(map[string]struct{}, len(repositoryURLs))
	targets := make([]CloneTarget, 0, len(repositoryURLs))
	var rejected []Result

	for _, repositoryURL := range repositoryURLs {
		target, resolveError := ResolveTarget(repositoryURL, cloneRoot, scheme)
		if resolveError != nil {
			service.logger.Debug(repositoryInvalidMessageConstant, zap.String(logFieldRepositoryURLConstant, repositoryURL), zap.Error(resolveError))
			rejected = append(rejected, Result{Target: CloneTarget{URL: repositoryURL}, Outcome: OutcomeInvalid})
			continue
		}

		if _, claimed := claimedDirectories[target.Directory]; claimed {
			service.logger.Warn(repositoryDuplicateMessageConstant, zap.String(logFieldRepositoryURLConstant, repositoryURL), zap.String(logFieldDirectoryConstant, target.Directory))
			rejected = append(rejected, Result{Target: target, Outcome: OutcomeDuplicateTarget})
			continue
		}

		claimedDirectories[target.Directory] = struct{}{}
		targets = append(targets, target)
	}

	return targets, rejected
}

func (service *Service) processTarget(executionContext context.Context, target CloneTarget) Result {
	if info, statError := service.fileSystem.Stat(target.Directory); statError == nil && info.IsDir() {
		_, pullError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments: []string{gitDirectoryFlagConstant, target.Directory, gitPullSubcommandConstant},
		})
		if pullError != nil {
			service.logger.Debug(repositoryPullFailedMessageConstant, zap.String(logFieldDirectoryConstant, target.Directory), zap.Error(pullError))
			return Result{Target: target, Outcome: OutcomeUpdateFailed}
		}
		return Result{Target: target, Outcome: OutcomeUpdated}
	}

	_, cloneError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitCloneSubcommandConstant, target.URL, target.Directory},
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentConstant: gitTerminalPromptDisabledConstant},
	})
	if cloneError != nil {
		service.logger.Debug(repositoryCloneFailedMessageConstant, zap.String(logFieldRepositoryURLConstant, target.URL), zap.Error(cloneError))
		return Result{Target: target, Outcome: OutcomeSkipped}
	}
	return Result{Target: target, Outcome: OutcomeCloned}
}

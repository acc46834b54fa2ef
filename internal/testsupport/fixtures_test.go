package testsupport_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/templatesync/internal/execshell"
	"github.com/temirov/templatesync/internal/testsupport"
)

func TestCreateTemplateTreeRoundTrip(testInstance *testing.T) {
	root := filepath.Join(testInstance.TempDir(), "community-templates")
	testsupport.CreateTemplateTree(testInstance, root,
		testsupport.TemplateFile{RelativePath: "cves/2024/foo.yaml", Contents: "id: foo\n"},
		testsupport.TemplateFile{RelativePath: "bar.yml", Contents: ""},
	)

	require.Equal(testInstance, map[string]string{
		"cves/2024/foo.yaml": "id: foo\n",
		"bar.yml":            "",
	}, testsupport.ReadTree(testInstance, root))
}

func TestReadTreeMissingRootIsEmpty(testInstance *testing.T) {
	require.Empty(testInstance, testsupport.ReadTree(testInstance, filepath.Join(testInstance.TempDir(), "absent")))
}

func TestWriteURLList(testInstance *testing.T) {
	listPath := testsupport.WriteURLList(testInstance, testInstance.TempDir(), testsupport.SampleRepositoryURLs()...)

	contents, readError := os.ReadFile(listPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testsupport.SampleRepositoryURLs(), strings.Fields(string(contents)))
	for _, repositoryURL := range testsupport.SampleRepositoryURLs() {
		require.True(testInstance, strings.HasPrefix(repositoryURL, "https://"))
		require.True(testInstance, strings.HasSuffix(repositoryURL, ".git"))
	}
}

func TestSetEnvironment(testInstance *testing.T) {
	testsupport.SetEnvironment(testInstance, map[string]string{
		"TEMPLATESYNC_TEST_ENV":   "testing",
		"TEMPLATESYNC_TEST_DEBUG": "true",
	})

	require.Equal(testInstance, "testing", os.Getenv("TEMPLATESYNC_TEST_ENV"))
	require.Equal(testInstance, "true", os.Getenv("TEMPLATESYNC_TEST_DEBUG"))
}

func TestGitExecutorStubSimulatesOutcomes(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	clonedDirectory := filepath.Join(workingDirectory, "user__repo1.git")
	stub := &testsupport.GitExecutorStub{
		CreateDirectories:  true,
		FailingURLs:        map[string]bool{"https://github.com/user/private": true},
		FailingDirectories: map[string]bool{"broken": true},
	}

	_, cloneError := stub.ExecuteGit(context.Background(), execshell.CommandDetails{Arguments: []string{"clone", "https://github.com/user/repo1.git", clonedDirectory}})
	require.NoError(testInstance, cloneError)
	require.DirExists(testInstance, clonedDirectory)

	_, privateError := stub.ExecuteGit(context.Background(), execshell.CommandDetails{Arguments: []string{"clone", "https://github.com/user/private", filepath.Join(workingDirectory, "private")}})
	var failedError execshell.CommandFailedError
	require.ErrorAs(testInstance, privateError, &failedError)
	require.NoDirExists(testInstance, filepath.Join(workingDirectory, "private"))

	_, pullError := stub.ExecuteGit(context.Background(), execshell.CommandDetails{Arguments: []string{"-C", "broken", "pull"}})
	require.Error(testInstance, pullError)

	require.Equal(testInstance, 2, stub.CountSubcommand("clone"))
	require.Equal(testInstance, 1, stub.CountSubcommand("-C"))
}

func TestGitExecutorStubConcurrentRecording(testInstance *testing.T) {
	const invocationCount = 32
	stub := &testsupport.GitExecutorStub{}

	var waitGroup sync.WaitGroup
	for index := 0; index < invocationCount; index++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			_, _ = stub.ExecuteGit(context.Background(), execshell.CommandDetails{Arguments: []string{"-C", "repo", "pull"}})
		}()
	}
	waitGroup.Wait()

	require.Len(testInstance, stub.ExecutedCommands(), invocationCount)
}

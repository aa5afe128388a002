package firehosegen

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sosedoff/gitkit"
	"github.com/stretchr/testify/require"

	"github.com/flowtide/firehosegen/cmd"
	"github.com/flowtide/firehosegen/envvar"
)

const testToken = "test-token"

const streamConfig = `deliveryStream:
  name: orders
  bucketARN: arn:aws:s3:::orders-bucket
  role:
    arn: arn:aws:iam::123456789012:role/firehose-orders
gitOps:
  git:
    repo: flowtide/streams
    branch: main
    path: streams
    push: true
`

func TestApplyGitOpsPush(t *testing.T) {
	repo := "flowtide/streams"

	baseDir := t.TempDir()

	gts, err := newTestGitServer(filepath.Join(baseDir, "gitserver"), testToken, []string{repo})
	require.NoError(t, err)
	defer gts.Close()

	workDir := filepath.Join(baseDir, "work")
	require.NoError(t, os.MkdirAll(workDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "firehosegen.yaml"), []byte(streamConfig), 0644))

	err = run(args{
		Command: []string{"apply"},
		Env: map[string]string{
			envvar.GitHubEnterpriseURL:     gts.URL + "/",
			envvar.GitRoot:                 filepath.Join(baseDir, "repositories"),
			envvar.GitHubToken:             testToken,
			envvar.GitCommitAuthorUserName: "firehosegenbot",
			envvar.GitCommitAuthorEmail:    "bot@example.com",
			envvar.StateFilePath:           filepath.Join(workDir, "firehosegen.state.yaml"),
		},
		Dir: workDir,
	})
	require.NoError(t, err)

	// The document must have landed on the main branch of the gitops
	// repository.
	verifyDir := filepath.Join(baseDir, "verify")

	cloneURL := strings.Replace(gts.URL, "http://", fmt.Sprintf("http://firehosegenbot:%s@", testToken), 1) + "/" + repo + ".git"
	gitCloneCmd := exec.Command("git", "clone", cloneURL, verifyDir)

	out, err := gitCloneCmd.CombinedOutput()
	require.NoError(t, err, string(out))

	b, err := os.ReadFile(filepath.Join(verifyDir, "streams", "orders.yaml"))
	require.NoError(t, err)
	require.Contains(t, string(b), "name: orders")

	_, err = os.Stat(filepath.Join(verifyDir, "streams", "orders.json"))
	require.NoError(t, err)

	// The state registry records the applied stream.
	b, err = os.ReadFile(filepath.Join(workDir, "firehosegen.state.yaml"))
	require.NoError(t, err)
	require.Contains(t, string(b), "orders")
}

func TestApplyPullRequest(t *testing.T) {
	repo := "flowtide/streams"

	hooks := testServerRepoHooks{
		repos: map[string]*testServerHooks{},
	}

	ts, err := newTestServer([]string{repo}, &hooks)
	require.NoError(t, err)
	defer ts.Close()

	baseDir := t.TempDir()

	gts, err := newTestGitServer(filepath.Join(baseDir, "gitserver"), testToken, []string{repo})
	require.NoError(t, err)
	defer gts.Close()

	workDir := filepath.Join(baseDir, "work")
	require.NoError(t, os.MkdirAll(workDir, 0755))

	prConfig := streamConfig + "  pullRequest: {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "firehosegen.yaml"), []byte(prConfig), 0644))

	err = run(args{
		Command: []string{"apply"},
		Env: map[string]string{
			// BaseURL must have a trailing slash, as required by go-github
			envvar.GitHubBaseURL:           ts.URL + "/",
			envvar.GitHubEnterpriseURL:     gts.URL + "/",
			envvar.GitRoot:                 filepath.Join(baseDir, "repositories"),
			envvar.GitHubToken:             testToken,
			envvar.GitCommitAuthorUserName: "firehosegenbot",
			envvar.GitCommitAuthorEmail:    "bot@example.com",
			envvar.StateFilePath:           filepath.Join(workDir, "firehosegen.state.yaml"),
		},
		Dir: workDir,
	})
	require.NoError(t, err)

	prs := hooks.repos[repo].PullRequests
	require.Len(t, prs, 1)
	require.Equal(t, "firehosegen apply render", prs[0].Title)
	require.Equal(t, "refs/heads/main", prs[0].Base)
	require.True(t, strings.HasPrefix(prs[0].Head, "refs/heads/firehosegen/render-"), prs[0].Head)
}

func TestRenderToStdoutNeedsNoGit(t *testing.T) {
	baseDir := t.TempDir()

	workDir := filepath.Join(baseDir, "work")
	require.NoError(t, os.MkdirAll(workDir, 0755))

	cfg := `deliveryStream:
  name: orders
  bucketARN: arn:aws:s3:::orders-bucket
  role:
    arn: arn:aws:iam::123456789012:role/firehose-orders
`
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "firehosegen.yaml"), []byte(cfg), 0644))

	outDir := filepath.Join(baseDir, "out")

	err := run(args{
		Command: []string{"render", "-o", outDir},
		Dir:     workDir,
	})
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(outDir, "orders.yaml"))
	require.NoError(t, err)
	require.Contains(t, string(b), "bucketARN: arn:aws:s3:::orders-bucket")
}

type pullRequest struct {
	Title string `json:"title"`
	Head  string `json:"head"`
	Base  string `json:"base"`
	Body  string `json:"body"`
}

type args struct {
	Command []string
	Env     map[string]string
	Dir     string
}

var dir string

func init() {
	var err error
	dir, err = os.Getwd()
	if err != nil {
		panic(err)
	}
}

func run(args args) error {
	defer func() {
		for k := range args.Env {
			_ = os.Unsetenv(k)
		}

		_ = os.Chdir(dir)
	}()

	for k, v := range args.Env {
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}

	if err := os.Chdir(args.Dir); err != nil {
		return err
	}

	os.Args = nil
	os.Args = append([]string{}, "firehosegen")
	os.Args = append(os.Args, args.Command...)

	return cmd.Main()
}

// newTestGitServer serves the given repositories, in the form of
// "owner/repo", over HTTP. Each repository starts with a single commit
// on main. The token is the password expected by the server.
func newTestGitServer(gitServerRoot, token string, repos []string) (*httptest.Server, error) {
	for _, repo := range repos {
		split := strings.Split(repo, "/")
		owner, name := split[0], split[1]

		ownerRoot, err := filepath.Abs(filepath.Join(gitServerRoot, owner))
		if err != nil {
			return nil, err
		}

		if err := os.MkdirAll(ownerRoot, 0755); err != nil {
			return nil, err
		}

		repoRoot := filepath.Join(ownerRoot, name) + ".git"

		gitInitBareCmd := exec.Command("git", "init", "--bare", repoRoot)

		r, err := gitInitBareCmd.CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("git init --bare: %w: %s", err, r)
		}

		repoWorktreeRoot := filepath.Join(ownerRoot, name)

		gitCloneCmd := exec.Command("git", "clone", repoRoot, repoWorktreeRoot)

		r, err = gitCloneCmd.CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("git clone: %w: %s", err, r)
		}

		if err := os.WriteFile(filepath.Join(repoWorktreeRoot, "README.md"), []byte("# streams\n"), 0644); err != nil {
			return nil, err
		}

		gitAddCmd := exec.Command("git", "add", ".")
		gitAddCmd.Dir = repoWorktreeRoot

		r, err = gitAddCmd.CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("git add: %w: %s", err, r)
		}

		gitCommitCmd := exec.Command("git", "-c", "user.name=init", "-c", "user.email=init@example.com", "commit", "-m", "initial commit")
		gitCommitCmd.Dir = repoWorktreeRoot

		r, err = gitCommitCmd.CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("git commit: %w: %s", err, r)
		}

		gitPushCmd := exec.Command("git", "push", "origin", "HEAD:main")
		gitPushCmd.Dir = repoWorktreeRoot

		r, err = gitPushCmd.CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("git push: %w: %s", err, r)
		}

		// See https://stackoverflow.com/a/15631690 why we need to change
		// the HEAD to main. Without this, git-clone still tries to check
		// out the master branch, which doesn't exist on the remote.
		gitChangeHeadCmd := exec.Command("git", "symbolic-ref", "HEAD", "refs/heads/main")
		gitChangeHeadCmd.Dir = repoRoot

		r, err = gitChangeHeadCmd.CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("git symbolic-ref HEAD refs/heads/main: %w: %s", err, r)
		}
	}

	g := gitkit.New(gitkit.Config{
		Dir:  gitServerRoot,
		Auth: true,
	})

	g.AuthFunc = func(cred gitkit.Credential, req *gitkit.Request) (bool, error) {
		return cred.Password == token, nil
	}

	mux := http.NewServeMux()

	// gitkit supports namespaces so one server serves owner/repo1 and
	// owner/repo2 alike.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		g.ServeHTTP(w, r)
	})

	return httptest.NewServer(mux), nil
}

// newTestServer fakes the parts of the GitHub API the pull-request
// store talks to.
func newTestServer(repos []string, hooks *testServerRepoHooks) (*httptest.Server, error) {
	mux := http.NewServeMux()

	for _, repo := range repos {
		h := &testServerHooks{}
		hooks.repos[repo] = h

		mux.HandleFunc(fmt.Sprintf("/repos/%s/pulls", repo), func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				w.Header().Set("Content-Type", "application/json")
				if err := json.NewEncoder(w).Encode(h.PullRequests); err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
				}
			case http.MethodPost:
				var req pullRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}

				h.PullRequests = append(h.PullRequests, req)

				w.WriteHeader(http.StatusCreated)
			}
		})
	}

	return httptest.NewServer(mux), nil
}

type testServerRepoHooks struct {
	repos map[string]*testServerHooks
}

type testServerHooks struct {
	PullRequests []pullRequest
}

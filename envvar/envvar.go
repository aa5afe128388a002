package envvar

const (
	// Prefix is the prefix of the environment variables used by firehosegen.
	// All the environment variables used by firehosegen start with this
	// prefix, except for the well-known ones set by the surrounding CI
	// system, like GITHUB_TOKEN.
	Prefix = "FIREHOSEGEN_"

	//
	// Operational settings
	//

	GitRoot                 = Prefix + "GIT_ROOT"
	GitCommitAuthorUserName = Prefix + "COMMIT_AUTHOR_USER_NAME"
	GitCommitAuthorEmail    = Prefix + "COMMIT_AUTHOR_EMAIL"

	GitHubToken = "GITHUB_TOKEN"

	// StateFilePath is the path to the file that records the delivery
	// streams managed by firehosegen.
	//
	// The file is read on destroy to figure out which streams exist, and
	// updated on every apply.
	StateFilePath = Prefix + "STATE_FILE_PATH"

	//
	// Configuration of the gitops delivery
	//

	BaseBranch = Prefix + "BASE_BRANCH"

	// This is used to configure the GitHub API base URL for testing.
	GitHubBaseURL = Prefix + "GITHUB_BASE_URL"

	// This is used to configure the alternative base URL for GitHub's HTTP
	// services. Mainly for swapping out github.com for testing,
	// but also useful for GitHub Enterprise.
	GitHubEnterpriseURL = Prefix + "GITHUB_ENTERPRISE_URL"

	// RawConfig contains the whole content of the firehosegen.yaml file.
	//
	// When this environment variable is set, firehosegen does not read the
	// firehosegen.yaml file. It is used to pass the configuration through
	// CI systems without checking the file into the repository being built.
	RawConfig = Prefix + "RAW_CONFIG"
)

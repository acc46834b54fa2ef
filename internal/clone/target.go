package clone

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	flagutils "github.com/temirov/templatesync/internal/utils/flags"
)

const (
	urlPathSeparatorConstant            = "/"
	scpHostSeparatorConstant            = ":"
	ownerRepositorySeparatorConstant    = "__"
	hashedDirectoryTemplateConstant     = "%s-%s"
	hashedDirectoryDigestLengthConstant = 8
	invalidURLErrorTemplateConstant     = "invalid repository URL format: %q"
	namingSchemeErrorTemplateConstant   = "naming scheme: %w"
)

// NamingScheme selects how a repository URL maps to a local directory name.
type NamingScheme string

const (
	// NamingSchemeOwnerRepository derives lower(owner__name).
	NamingSchemeOwnerRepository NamingScheme = "owner-repository"
	// NamingSchemeHashed derives lower(name)-<first 8 hex of md5(url)>.
	NamingSchemeHashed NamingScheme = "hashed"
)

var namingSchemeChoices = flagutils.ChoiceSet{
	Default: string(NamingSchemeOwnerRepository),
	Values:  []string{string(NamingSchemeOwnerRepository), string(NamingSchemeHashed)},
}

// ParseNamingScheme normalizes a configured scheme name; blank selects owner-repository.
func ParseNamingScheme(raw string) (NamingScheme, error) {
	scheme, parseError := namingSchemeChoices.Parse(raw)
	if parseError != nil {
		return "", fmt.Errorf(namingSchemeErrorTemplateConstant, parseError)
	}
	return NamingScheme(scheme), nil
}

// CloneTarget describes where a repository URL is materialized on disk.
type CloneTarget struct {
	URL       string
	Owner     string
	Name      string
	Directory string
}

// InvalidURLError reports a URL that does not yield an owner and repository segment.
type InvalidURLError struct {
	URL string
}

func (invalid InvalidURLError) Error() string {
	return fmt.Sprintf(invalidURLErrorTemplateConstant, invalid.URL)
}

// ResolveTarget derives the owner, name, and directory for a repository URL.
// Owner and name are the last two "/" segments after trailing slashes are removed;
// an scp-style owner segment such as "git@host:owner" contributes only the text after the last ":".
func ResolveTarget(repositoryURL string, cloneRoot string, scheme NamingScheme) (CloneTarget, error) {
	trimmedURL := strings.TrimRight(strings.TrimSpace(repositoryURL), urlPathSeparatorConstant)
	segments := strings.Split(trimmedURL, urlPathSeparatorConstant)
	if len(segments) < 2 {
		return CloneTarget{}, InvalidURLError{URL: repositoryURL}
	}

	ownerSegment := segments[len(segments)-2]
	if separatorIndex := strings.LastIndex(ownerSegment, scpHostSeparatorConstant); separatorIndex >= 0 {
		ownerSegment = ownerSegment[separatorIndex+1:]
	}
	nameSegment := segments[len(segments)-1]
	if len(ownerSegment) == 0 || len(nameSegment) == 0 {
		return CloneTarget{}, InvalidURLError{URL: repositoryURL}
	}

	var directoryName string
	switch scheme {
	case NamingSchemeHashed:
		digest := md5.Sum([]byte(repositoryURL))
		directoryName = fmt.Sprintf(hashedDirectoryTemplateConstant, strings.ToLower(nameSegment), hex.EncodeToString(digest[:])[:hashedDirectoryDigestLengthConstant])
	default:
		directoryName = strings.ToLower(ownerSegment + ownerRepositorySeparatorConstant + nameSegment)
	}

	return CloneTarget{
		URL:       repositoryURL,
		Owner:     ownerSegment,
		Name:      nameSegment,
		Directory: filepath.Join(cloneRoot, directoryName),
	}, nil
}

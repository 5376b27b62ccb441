package guidecorpus

// Defaults used by the corpus builder.
const (
	DefaultSourceDir    = "guidelines"
	DefaultOutputPath   = "artifacts/vertex_search_corpus.jsonl"
	DefaultExtension    = ".txt"
	DefaultSourceLabel  = "Public Clinical Guidance"
	DefaultMIMEType     = "text/plain"
	DefaultSnippetLimit = 5000 // datastore snippet limit, in characters
)

// DefaultTags are attached to every document.
var DefaultTags = []string{"clinical_guidance", "symptom_triage"}

// Options configures a corpus build.
type Options struct {
	SourceDir    string
	OutputPath   string
	Extension    string
	SourceLabel  string
	MIMEType     string
	SnippetLimit int
	Tags         []string
}

// DefaultOptions returns the options used when nothing is overridden.
func DefaultOptions() Options {
	return Options{
		SourceDir:    DefaultSourceDir,
		OutputPath:   DefaultOutputPath,
		Extension:    DefaultExtension,
		SourceLabel:  DefaultSourceLabel,
		MIMEType:     DefaultMIMEType,
		SnippetLimit: DefaultSnippetLimit,
		Tags:         append([]string(nil), DefaultTags...),
	}
}

// Validate returns an error if the options cannot drive a build.
func (o *Options) Validate() error {
	if o.SourceDir == "" {
		return Errorf(EINVALID, "source directory required")
	}
	if o.OutputPath == "" {
		return Errorf(EINVALID, "output path required")
	}
	if o.Extension == "" {
		return Errorf(EINVALID, "file extension required")
	}
	if o.SnippetLimit <= 0 {
		return Errorf(EINVALID, "snippet limit must be positive")
	}
	return nil
}

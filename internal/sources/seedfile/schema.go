package seedfile

// SeedBookmark is a single bookmark entry in the seed YAML.
type SeedBookmark struct {
	Label    string `yaml:"label"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Starred  bool   `yaml:"starred"`
}

// SeedCategory is a category with its bookmarks.
type SeedCategory struct {
	Name      string         `yaml:"name"`
	Bookmarks []SeedBookmark `yaml:"bookmarks"`
}

// SeedConfig is the root structure of the seed file:
//
//	categories:
//	  - name: Work
//	    bookmarks:
//	      - label: GitHub
//	        url: https://github.com
//	        starred: true
type SeedConfig struct {
	Categories []SeedCategory `yaml:"categories"`
}

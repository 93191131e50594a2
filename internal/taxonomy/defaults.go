package taxonomy

// DefaultTables returns the seed vocabulary and lookup tables
func DefaultTables() Tables {
	return Tables{
		Categories: []Category{
			{Name: Frontend, Tokens: []string{"react", "vue", "angular", "javascript", "typescript", "html", "css", "sass", "tailwind", "next.js", "svelte", "redux"}},
			{Name: Backend, Tokens: []string{"node.js", "python", "java", "go", "rust", "php", "ruby", "c#", "express", "django", "flask", "spring", "graphql", "api"}},
			{Name: Database, Tokens: []string{"sql", "mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle", "cassandra", "dynamodb", "elasticsearch"}},
			{Name: Cloud, Tokens: []string{"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins", "ci/cd", "linux"}},
			{Name: AIML, Tokens: []string{"machine learning", "deep learning", "tensorflow", "pytorch", "scikit-learn", "pandas", "numpy", "nlp", "computer vision", "llm", "langchain"}},
			{Name: Mobile, Tokens: []string{"react native", "flutter", "swift", "kotlin", "ios", "android"}},
		},
		Alternatives: map[string][]string{
			"react":      {"vue", "angular", "svelte"},
			"vue":        {"react", "angular"},
			"angular":    {"react", "vue"},
			"aws":        {"azure", "gcp"},
			"azure":      {"aws", "gcp"},
			"gcp":        {"aws", "azure"},
			"docker":     {"podman", "kubernetes"},
			"mysql":      {"postgresql", "sqlite"},
			"postgresql": {"mysql", "sqlite"},
			"mongodb":    {"dynamodb", "cassandra"},
			"python":     {"ruby", "go"},
			"java":       {"kotlin", "c#"},
		},
		Synonyms: map[string][]string{
			"javascript":       {"js", "node.js", "typescript", "ts"},
			"python":           {"py", "django", "flask"},
			"kubernetes":       {"k8s"},
			"postgresql":       {"postgres", "psql"},
			"machine learning": {"ml", "ai"},
			"go":               {"golang"},
		},
		Aliases: map[string]string{
			"golang":     "go",
			"go lang":    "go",
			"js":         "javascript",
			"ts":         "typescript",
			"k8s":        "kubernetes",
			"reactjs":    "react",
			"react.js":   "react",
			"vuejs":      "vue",
			"vue.js":     "vue",
			"nodejs":     "node.js",
			"node":       "node.js",
			"postgres":   "postgresql",
			"expressjs":  "express",
			"express.js": "express",
			"nextjs":     "next.js",
			"ml":         "machine learning",
		},
		CriticalSkills:  []string{"javascript", "python", "java", "react", "node.js", "sql"},
		ImportantSkills: []string{"docker", "aws", "git", "api", "database"},
		CityAliases: [][]string{
			{"bangalore", "bengaluru"},
			{"mumbai", "bombay"},
			{"chennai", "madras"},
			{"kolkata", "calcutta"},
			{"gurgaon", "gurugram"},
			{"delhi", "new delhi", "ncr"},
			{"new york", "nyc", "new york city"},
			{"san francisco", "sf", "bay area"},
		},
	}
}

// Default returns the seed taxonomy
func Default() *Taxonomy {
	return New(DefaultTables())
}

package taxonomy

// defaultCategories is the built-in IT skill taxonomy, in lookup order.
// "javascript" appears in both languages and frontend; CategoryOf reports languages.
var defaultCategories = []Category{
	{Name: "languages", Skills: []string{
		"c", "c++", "c#", "rust", "go", "assembly", "objective-c",
		"java", "python", "javascript", "typescript", "php", "ruby", "kotlin", "swift", "scala", "groovy", "perl", "r",
		"bash", "shell", "powershell",
	}},
	{Name: "frontend", Skills: []string{
		"html", "css", "javascript", "wcag", "react", "angular", "vue.js", "svelte", "next.js", "nuxt.js", "jquery",
		"bootstrap", "tailwind css", "material ui", "ant design", "chakra ui",
		"spa", "ssr", "responsive design", "cross-browser compatibility", "web performance optimization",
	}},
	{Name: "backend", Skills: []string{
		"node.js", "express.js", "nestjs", "django", "flask", "fastapi", "spring", "spring boot", "asp.net", ".net core", "laravel", "ruby on rails",
		"rest apis", "graphql", "grpc", "microservices", "monolithic architecture", "event-driven architecture",
		"hibernate", "jpa",
	}},
	{Name: "databases", Skills: []string{
		"sql", "mysql", "postgresql", "oracle", "sql server", "sqlite", "mariadb",
		"mongodb", "cassandra", "dynamodb", "couchdb", "firebase firestore",
		"snowflake", "redshift", "bigquery", "azure synapse",
		"redis", "memcached",
	}},
	{Name: "cloud", Skills: []string{
		"aws", "azure", "gcp", "ec2", "s3", "lambda", "serverless", "cloud functions", "load balancers",
		"cloud networking", "cloud architecture", "high availability", "scalability", "cost optimization", "disaster recovery",
		"amazon web services", "google cloud platform", "microsoft azure", "google cloud",
	}},
	{Name: "devops", Skills: []string{
		"docker", "kubernetes", "helm", "github actions", "gitlab ci", "jenkins", "circleci", "azure devops",
		"terraform", "cloudformation", "ansible", "pulumi",
		"prometheus", "grafana", "elk stack", "datadog", "new relic",
	}},
	{Name: "data_ai", Skills: []string{
		"data analysis", "data cleaning", "data visualization", "etl pipelines",
		"pandas", "numpy", "matplotlib", "seaborn", "power bi", "tableau",
		"hadoop", "spark", "kafka",
		"machine learning", "deep learning", "nlp", "computer vision", "model training", "feature engineering",
		"tensorflow", "pytorch", "scikit-learn",
	}},
	{Name: "testing", Skills: []string{
		"unit testing", "integration testing", "system testing", "regression testing", "performance testing",
		"selenium", "cypress", "playwright", "junit", "pytest", "testng", "postman",
		"test automation", "test planning", "bug tracking",
	}},
	{Name: "security", Skills: []string{
		"cybersecurity", "application security", "network security", "vulnerability assessment", "penetration testing", "secure coding",
		"owasp", "burp suite", "metasploit",
		"tcp/ip", "dns", "http", "https", "firewalls", "vpn",
	}},
	{Name: "concepts", Skills: []string{
		"data structures", "algorithms", "oop", "design patterns", "solid principles", "clean code", "code reviews", "refactoring", "system design",
	}},
	{Name: "collaboration", Skills: []string{
		"git", "github", "gitlab", "bitbucket",
	}},
	{Name: "methodologies", Skills: []string{
		"agile", "scrum", "kanban", "waterfall", "sdlc",
	}},
	{Name: "soft_skills", Skills: []string{
		"communication", "verbal communication", "written communication", "technical documentation",
		"collaboration", "teamwork", "stakeholder communication",
		"problem solving", "analytical thinking", "debugging", "root cause analysis",
		"time management", "ownership", "adaptability",
		"leadership", "mentoring", "decision making", "conflict resolution",
	}},
	{Name: "emerging", Skills: []string{
		"web3", "blockchain", "smart contracts", "edge computing", "iot", "ar", "vr", "quantum computing",
	}},
}

// defaultAliases maps common variants to their canonical skill.
// "react native" -> "react" is a deliberate lossy simplification: the mobile
// specialization is dropped so React Native experience counts toward React.
var defaultAliases = map[string]string{
	"js":                          "javascript",
	"ts":                          "typescript",
	"node":                        "node.js",
	"nodejs":                      "node.js",
	"express":                     "express.js",
	"expressjs":                   "express.js",
	"reactjs":                     "react",
	"react.js":                    "react",
	"vue":                         "vue.js",
	"vuejs":                       "vue.js",
	"postgres":                    "postgresql",
	"postgresql":                  "postgresql",
	"mongo":                       "mongodb",
	"mongodb":                     "mongodb",
	"aws cloud":                   "aws",
	"amazon web services":         "aws",
	"google cloud":                "gcp",
	"google cloud platform":       "gcp",
	"microsoft azure":             "azure",
	"dotnet":                      "asp.net",
	".net":                        "asp.net",
	"csharp":                      "c#",
	"c sharp":                     "c#",
	"cpp":                         "c++",
	"c plus plus":                 "c++",
	"html5":                       "html",
	"css3":                        "css",
	"nextjs":                      "next.js",
	"k8s":                         "kubernetes",
	"golang":                      "go",
	"bash scripting":              "bash",
	"shell scripting":             "shell",
	"rest":                        "rest apis",
	"restful":                     "rest apis",
	"ci/cd":                       "ci/cd",
	"cicd":                        "ci/cd",
	"ml":                          "machine learning",
	"ai":                          "ai",
	"natural language processing": "nlp",
	"qa":                          "testing",
	"python3":                     "python",
	"py":                          "python",
	"react native":                "react",
	"aws-s3":                      "s3",
	"s3 bucket":                   "s3",
}

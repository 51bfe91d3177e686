package jobdesc

// skillKeywords maps lowercase keywords found in postings to canonical skill
// names. Multi-word keywords must appear before their single-word substrings
// would match, so matching walks this ordered list rather than a map.
type skillKeyword struct {
	keyword   string
	canonical string
}

var skillKeywords = []skillKeyword{
	{"golang", "Go"},
	{"node.js", "Node.js"},
	{"nodejs", "Node.js"},
	{"react native", "React Native"},
	{"react", "React"},
	{"next.js", "Next.js"},
	{"vue", "Vue.js"},
	{"angular", "Angular"},
	{"typescript", "TypeScript"},
	{"javascript", "JavaScript"},
	{"python", "Python"},
	{"django", "Django"},
	{"flask", "Flask"},
	{"fastapi", "FastAPI"},
	{"java", "Java"},
	{"spring boot", "Spring Boot"},
	{"spring", "Spring"},
	{"kotlin", "Kotlin"},
	{"swift", "Swift"},
	{"c#", "C#"},
	{".net", ".NET"},
	{"ruby on rails", "Ruby on Rails"},
	{"ruby", "Ruby"},
	{"php", "PHP"},
	{"laravel", "Laravel"},
	{"rust", "Rust"},
	{"c++", "C++"},
	{"scala", "Scala"},
	{"postgresql", "PostgreSQL"},
	{"postgres", "PostgreSQL"},
	{"mysql", "MySQL"},
	{"mongodb", "MongoDB"},
	{"redis", "Redis"},
	{"elasticsearch", "Elasticsearch"},
	{"sqlite", "SQLite"},
	{"sql", "SQL"},
	{"graphql", "GraphQL"},
	{"grpc", "gRPC"},
	{"rest api", "REST APIs"},
	{"rest", "REST APIs"},
	{"kafka", "Kafka"},
	{"rabbitmq", "RabbitMQ"},
	{"aws", "AWS"},
	{"amazon web services", "AWS"},
	{"gcp", "GCP"},
	{"google cloud", "GCP"},
	{"azure", "Azure"},
	{"docker", "Docker"},
	{"kubernetes", "Kubernetes"},
	{"k8s", "Kubernetes"},
	{"terraform", "Terraform"},
	{"ansible", "Ansible"},
	{"jenkins", "Jenkins"},
	{"ci/cd", "CI/CD"},
	{"git", "Git"},
	{"linux", "Linux"},
	{"machine learning", "Machine Learning"},
	{"deep learning", "Deep Learning"},
	{"tensorflow", "TensorFlow"},
	{"pytorch", "PyTorch"},
	{"pandas", "Pandas"},
	{"numpy", "NumPy"},
	{"data analysis", "Data Analysis"},
	{"tableau", "Tableau"},
	{"power bi", "Power BI"},
	{"excel", "Excel"},
	{"figma", "Figma"},
	{"photoshop", "Photoshop"},
	{"html", "HTML"},
	{"css", "CSS"},
	{"sass", "Sass"},
	{"tailwind", "Tailwind CSS"},
	{"flutter", "Flutter"},
	{"android", "Android"},
	{"ios", "iOS"},
	{"selenium", "Selenium"},
	{"cypress", "Cypress"},
	{"jest", "Jest"},
	{"agile", "Agile"},
	{"scrum", "Scrum"},
	{"jira", "Jira"},
	{"project management", "Project Management"},
	{"communication", "Communication"},
	{"leadership", "Leadership"},
}

var seniorMarkers = []string{
	"senior", "sr.", "sr ", "lead", "principal", "staff engineer",
	"architect", "head of", "8+ years", "7+ years", "6+ years", "5+ years",
}

var entryMarkers = []string{
	"junior", "jr.", "jr ", "entry level", "entry-level", "fresher",
	"graduate", "intern", "trainee", "0-1 year", "0-2 years", "no experience",
}

// industryMarkers maps a detectable keyword to an industry label. Checked in
// order; first hit wins.
var industryMarkers = []struct {
	keyword  string
	industry string
}{
	{"fintech", "Financial Technology"},
	{"banking", "Banking & Finance"},
	{"healthcare", "Healthcare"},
	{"health tech", "Healthcare"},
	{"e-commerce", "E-commerce"},
	{"ecommerce", "E-commerce"},
	{"retail", "Retail"},
	{"edtech", "Education Technology"},
	{"education", "Education"},
	{"logistics", "Logistics"},
	{"gaming", "Gaming"},
	{"insurance", "Insurance"},
	{"telecom", "Telecommunications"},
	{"automotive", "Automotive"},
	{"saas", "SaaS"},
}

// DefaultIndustry is used when nothing in the text signals an industry.
const DefaultIndustry = "Technology"

// requiredSkillCap bounds how many matched skills count as required; matches
// beyond it are treated as preferred.
const requiredSkillCap = 8

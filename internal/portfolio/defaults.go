package portfolio

const defaultDescription = "Passionate DevOps Engineer focused on automating infrastructure, " +
	"building CI/CD pipelines, and optimizing cloud deployments."

func defaultPersonalInfo() PersonalInfo {
	return PersonalInfo{
		Name:        "Alex Kumar",
		Title:       "DevOps Engineer",
		Description: defaultDescription,
		Email:       "alex.kumar@example.com",
		Phone:       "+1 (555) 123-4567",
		Location:    "Bangalore, India",
		GitHub:      "https://github.com",
		LinkedIn:    "https://linkedin.com",
		Avatar:      "AK",
	}
}

func defaultTheme() ThemeSettings {
	return ThemeSettings{
		PrimaryColor:         "#3b82f6",
		DarkMode:             true,
		Animations:           true,
		ShowFloatingElements: true,
	}
}

// Default is the snapshot a client shows when neither its cache nor the
// remote service could provide one. Projects and skills are empty.
func Default() Snapshot {
	return Snapshot{
		PersonalInfo:  defaultPersonalInfo(),
		Projects:      []Project{},
		Skills:        []Skill{},
		ThemeSettings: defaultTheme(),
	}
}

// Sample is the snapshot the web service falls back to when the store backend
// is unreachable. The store backend also seeds a fresh database with it.
func Sample() Snapshot {
	s := Default()

	s.Projects = []Project{
		{
			ID:    "1",
			Title: "Automated CI/CD Pipeline",
			Description: "Built a complete CI/CD pipeline using Jenkins and Docker for a microservices " +
				"application, reducing deployment time by 70% and eliminating manual errors.",
			Technologies: []string{"Jenkins", "Docker", "Kubernetes", "AWS", "Terraform"},
			GitHubURL:    "https://github.com/example/cicd-pipeline",
			LiveURL:      "https://pipeline-demo.example.com",
			ImageURL:     "cicd",
			Featured:     true,
		},
		{
			ID:    "2",
			Title: "Infrastructure as Code",
			Description: "Designed and implemented cloud infrastructure using Terraform and Ansible, " +
				"managing 50+ AWS resources with version control and automated provisioning.",
			Technologies: []string{"Terraform", "Ansible", "AWS", "CloudFormation", "Python"},
			GitHubURL:    "https://github.com/example/iac-project",
			LiveURL:      "https://infrastructure-demo.example.com",
			ImageURL:     "infrastructure",
			Featured:     false,
		},
		{
			ID:    "3",
			Title: "Monitoring & Alerting System",
			Description: "Implemented comprehensive monitoring solution using Prometheus, Grafana, and " +
				"AlertManager for real-time infrastructure and application monitoring.",
			Technologies: []string{"Prometheus", "Grafana", "AlertManager", "Docker", "Kubernetes"},
			GitHubURL:    "https://github.com/example/monitoring-stack",
			LiveURL:      "https://monitoring-demo.example.com",
			ImageURL:     "monitoring",
			Featured:     true,
		},
	}

	s.Skills = []Skill{
		{Name: "AWS", Level: 75, Category: "Cloud Platforms"},
		{Name: "Azure", Level: 70, Category: "Cloud Platforms"},
		{Name: "Google Cloud", Level: 60, Category: "Cloud Platforms"},
		{Name: "DigitalOcean", Level: 80, Category: "Cloud Platforms"},
		{Name: "Jenkins", Level: 80, Category: "CI/CD & Automation"},
		{Name: "GitHub Actions", Level: 85, Category: "CI/CD & Automation"},
		{Name: "GitLab CI", Level: 75, Category: "CI/CD & Automation"},
		{Name: "Ansible", Level: 70, Category: "CI/CD & Automation"},
		{Name: "Docker", Level: 85, Category: "Containerization"},
		{Name: "Kubernetes", Level: 75, Category: "Containerization"},
		{Name: "Docker Compose", Level: 90, Category: "Containerization"},
		{Name: "Helm", Level: 65, Category: "Containerization"},
		{Name: "Terraform", Level: 78, Category: "Infrastructure & Monitoring"},
		{Name: "Prometheus", Level: 70, Category: "Infrastructure & Monitoring"},
		{Name: "Grafana", Level: 75, Category: "Infrastructure & Monitoring"},
		{Name: "ELK Stack", Level: 65, Category: "Infrastructure & Monitoring"},
	}

	return s
}

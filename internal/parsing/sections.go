package parsing

import (
	"strings"
	"unicode/utf8"
)

// Resume section names
const (
	SectionEducation      = "education"
	SectionExperience     = "experience"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionOthers         = "others"
)

// SectionNames lists every bucket ExtractSections returns, others last
var SectionNames = []string{
	SectionEducation, SectionExperience, SectionSkills, SectionProjects, SectionCertifications, SectionOthers,
}

var sectionHeadings = []struct {
	name     string
	keywords []string
}{
	{SectionEducation, []string{"education", "academic background", "qualifications", "education & certifications"}},
	{SectionExperience, []string{"experience", "work experience", "employment history", "work history", "professional experience"}},
	{SectionSkills, []string{"skills", "technical skills", "technologies", "core competencies", "technical proficiency"}},
	{SectionProjects, []string{"projects", "personal projects", "academic projects", "key projects"}},
	{SectionCertifications, []string{"certifications", "credentials", "licenses", "courses"}},
}

// ExtractSections splits resume text into section buckets by heading lines.
// Text before the first recognized heading lands in "others". Heading lines are
// kept at the top of the section they open. Every bucket is present, possibly empty.
func ExtractSections(text string) map[string]string {
	builders := make(map[string]*strings.Builder, len(SectionNames))
	for _, name := range SectionNames {
		builders[name] = &strings.Builder{}
	}

	walkSections(strings.TrimSpace(text), headingSection, func(section, line string, _ int) {
		b := builders[section]
		b.WriteString(line)
		b.WriteByte('\n')
	})

	out := make(map[string]string, len(builders))
	for name, b := range builders {
		out[name] = b.String()
	}
	return out
}

// sectionSpan is a byte range of text belonging to one section
type sectionSpan struct {
	Name       string
	Start, End int
}

// sectionSpans locates sections for evidence context. It recognizes only
// strict headings so a sentence opening with a keyword cannot switch context.
func sectionSpans(text string) []sectionSpan {
	var spans []sectionSpan
	walkSections(text, strictHeadingSection, func(section, line string, offset int) {
		end := offset + len(line)
		if n := len(spans); n > 0 && spans[n-1].Name == section {
			spans[n-1].End = end
			return
		}
		spans = append(spans, sectionSpan{Name: section, Start: offset, End: end})
	})
	return spans
}

// sectionAt returns the section containing byte offset idx
func sectionAt(spans []sectionSpan, idx int) string {
	for _, s := range spans {
		if idx >= s.Start && idx <= s.End {
			return s.Name
		}
	}
	return SectionOthers
}

func walkSections(text string, heading func(string) (string, bool), visit func(section, line string, offset int)) {
	current := SectionOthers
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		if name, ok := heading(line); ok {
			current = name
		}
		visit(current, line, offset)
		offset += len(line) + 1
	}
}

// headingSection accepts a keyword line or a short line starting with a keyword
func headingSection(line string) (string, bool) {
	return matchHeading(line, false)
}

// strictHeadingSection accepts a keyword line, or a line starting with a
// keyword only when it ends in ':'
func strictHeadingSection(line string) (string, bool) {
	return matchHeading(line, true)
}

func matchHeading(line string, strict bool) (string, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	colon := strings.HasSuffix(trimmed, ":")
	check := strings.Trim(trimmed, ":-•* ")
	n := utf8.RuneCountInString(check)
	if n <= 2 || n >= 50 {
		return "", false
	}
	for _, h := range sectionHeadings {
		for _, k := range h.keywords {
			if check == k {
				return h.name, true
			}
			if strings.HasPrefix(check, k+" ") && (!strict || colon) {
				return h.name, true
			}
		}
	}
	return "", false
}

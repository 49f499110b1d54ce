package history

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// The registrar exports are plain text dumps. Class info interleaves course
// headers with per-term enrollment blocks; the descriptions file follows
// each header with prose and labeled Credits/Core/Offered lines.
var (
	infoCourseRe  = regexp.MustCompile(`^((?:MGMT|ECON|ECMG|ACCT|ITMG|LEAD|CAMG) \d+): (.+)$`)
	infoYearRe    = regexp.MustCompile(`Year: (\d+) \| Term: (\w+)`)
	infoSectionRe = regexp.MustCompile(`Section: (\d+)`)
	// Instructor lines read "Last, First" or "Last, First ; Dept".
	infoInstructorRe = regexp.MustCompile(`^([A-Z][a-z]+(?:-[A-Z][a-z]+)?, [A-Z][a-z]+(?:\s*;\s*[A-Za-z/]+)?)`)

	descCourseRe = regexp.MustCompile(`^((?:ECON|ECMG|MGMT|ITMG|LEAD|CAMG|ECPS) \d+[AB]?) (.+)$`)
)

// ParseClassInfo extracts course records and their past offerings from a
// registrar class info dump.
func ParseClassInfo(r io.Reader) (Archive, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading class info: %w", err)
	}
	lines := strings.Split(string(content), "\n")

	archive := Archive{}
	var current *Record

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if m := infoCourseRe.FindStringSubmatch(line); m != nil {
			codeNum, name := m[1], m[2]

			// "See ECON 480" entries are cross references, not courses.
			if strings.HasPrefix(name, "See ") {
				continue
			}

			key := strings.ReplaceAll(codeNum, " ", "-")
			rec, ok := archive[key]
			if !ok {
				parts := strings.Fields(codeNum)
				rec = &Record{Code: parts[0], Number: parts[1], Name: name}
				archive[key] = rec
			}
			current = rec
			continue
		}

		m := infoYearRe.FindStringSubmatch(line)
		if m == nil || current == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		term := m[2]

		section := "01"
		if i+1 < len(lines) {
			if sm := infoSectionRe.FindStringSubmatch(lines[i+1]); sm != nil {
				section = sm[1]
			}
		}

		// The instructor line trails the enrollment block by a few lines.
		instructor := ""
		for j := i + 1; j < len(lines) && j < i+10; j++ {
			probe := strings.TrimSpace(lines[j])
			if im := infoInstructorRe.FindStringSubmatch(probe); im != nil {
				instructor = strings.TrimSpace(strings.Split(im[1], ";")[0])
				if comma := strings.Index(instructor, ","); comma >= 0 {
					instructor = instructor[:comma]
				}
				break
			}
			if strings.Contains(lines[j], "Instructor has not yet been assigned") {
				instructor = "TBA"
				break
			}
		}

		off := Offering{Year: year, Term: term, Section: section, Instructor: instructor}
		if !hasOffering(current.Offerings, off) {
			current.Offerings = append(current.Offerings, off)
		}
	}

	archive.sortOfferings()
	return archive, nil
}

func hasOffering(offs []Offering, off Offering) bool {
	for _, o := range offs {
		if o.Year == off.Year && o.Term == off.Term && o.Section == off.Section {
			return true
		}
	}
	return false
}

// ParseDescriptions extracts course descriptions and catalog metadata from
// a registrar descriptions dump.
func ParseDescriptions(r io.Reader) (Archive, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading descriptions: %w", err)
	}
	lines := strings.Split(string(content), "\n")

	archive := Archive{}

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])

		m := descCourseRe.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}
		codeNum, name := m[1], m[2]

		// Prose runs until the first labeled field or the next header.
		var descLines []string
		i++
		for i < len(lines) {
			l := strings.TrimSpace(lines[i])
			if l == "Credits" || l == "Core" || l == "Offered" || l == "Cross Listed Courses" {
				break
			}
			if l != "" && descCourseRe.FindStringSubmatch(l) == nil {
				descLines = append(descLines, l)
			}
			i++
		}

		var credits, core, offered string
		for i < len(lines) {
			l := strings.TrimSpace(lines[i])
			if descCourseRe.FindStringSubmatch(l) != nil {
				break
			}

			switch l {
			case "Credits":
				i++
				if i < len(lines) {
					credits = strings.TrimSpace(lines[i])
				}
			case "Core":
				i++
				if i < len(lines) {
					core = strings.TrimSpace(lines[i])
				}
			case "Offered":
				i++
				if i < len(lines) {
					offered = strings.TrimSpace(lines[i])
				}
			case "Cross Listed Courses":
				// Skip the listing and its description line.
				i++
				if i < len(lines) {
					i++
				}
			}
			i++
		}

		parts := strings.Fields(codeNum)
		number := ""
		if len(parts) > 1 {
			number = parts[1]
		}
		archive[strings.ReplaceAll(codeNum, " ", "-")] = &Record{
			Code:        parts[0],
			Number:      number,
			Name:        name,
			Description: strings.Join(descLines, " "),
			Credits:     credits,
			Core:        core,
			Offered:     offered,
		}
	}

	return archive, nil
}

// Merge copies catalog metadata from a descriptions archive onto the
// matching records. Offerings are untouched.
func (a Archive) Merge(descs Archive) {
	for key, rec := range a {
		desc, ok := descs[key]
		if !ok {
			continue
		}
		rec.Description = desc.Description
		rec.Credits = desc.Credits
		rec.Core = desc.Core
		rec.Offered = desc.Offered
	}
}

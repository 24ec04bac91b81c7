package engine

// Section is one of the résumé sections an ATS expects.
type Section string

const (
	SectionContact    Section = "contact"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
	SectionExperience Section = "experience"
)

// RequiredSections lists every expected section in reporting order.
var RequiredSections = [...]Section{SectionContact, SectionEducation, SectionSkills, SectionExperience}

// Aggregation weights in percent. They must sum to 100.
const (
	weightStructure  = 30
	weightKeywords   = 40
	weightExperience = 20
	weightMetrics    = 10
)

// Signals is everything the extractors found in one résumé.
type Signals struct {
	Skills       SkillCounts
	Contact      ContactSignals
	Experience   ExperienceSignals
	Education    bool
	Achievements AchievementSignals
	// GenericSkills is set when a methodology term stands in for catalog keywords.
	GenericSkills bool
}

// HasSection reports whether the résumé contains the given section.
func (s Signals) HasSection(sec Section) bool {
	switch sec {
	case SectionContact:
		return s.Contact.Count > 0
	case SectionEducation:
		return s.Education
	case SectionSkills:
		return s.Skills.Total > 0 || s.GenericSkills
	case SectionExperience:
		return s.Experience.HasWorkExperience
	default:
		return false
	}
}

// Sections partitions RequiredSections into present and missing, preserving order.
func (s Signals) Sections() (present, missing []Section) {
	present = []Section{}
	missing = []Section{}
	for _, sec := range RequiredSections {
		if s.HasSection(sec) {
			present = append(present, sec)
		} else {
			missing = append(missing, sec)
		}
	}
	return present, missing
}

// Scores holds every category score.
type Scores struct {
	Structure  int
	Contact    int
	Keywords   int
	Experience int
	Metrics    int
}

// bucket awards score when its condition holds. Bucket lists are ordered from the highest
// score down and the first qualifying bucket wins.
type bucket[T any] struct {
	score int
	when  func(T) bool
}

func pick[T any](buckets []bucket[T], in T) int {
	for _, b := range buckets {
		if b.when(in) {
			return b.score
		}
	}
	return 0
}

var structureBuckets = []bucket[int]{
	{100, func(n int) bool { return n >= 4 }},
	{90, func(n int) bool { return n == 3 }},
	{70, func(n int) bool { return n == 2 }},
	{50, func(n int) bool { return n == 1 }},
}

var contactBuckets = []bucket[ContactSignals]{
	{100, func(c ContactSignals) bool { return c.Count >= 4 }},
	{95, func(c ContactSignals) bool { return c.HasEmail && c.HasPhone && c.HasLinkedIn }},
	{85, func(c ContactSignals) bool { return coreChannels(c) == 2 }},
	{65, func(c ContactSignals) bool { return coreChannels(c) == 1 }},
}

var keywordBuckets = []bucket[SkillCounts]{
	{100, func(s SkillCounts) bool { return len(s.NonZeroCategories()) >= 10 }},
	{90, func(s SkillCounts) bool { return len(s.NonZeroCategories()) >= 7 }},
	{80, func(s SkillCounts) bool { return len(s.NonZeroCategories()) >= 4 }},
	{60, func(s SkillCounts) bool { return len(s.NonZeroCategories()) >= 2 }},
	{40, func(s SkillCounts) bool { return s.Diversity >= 1 }},
}

var experienceBuckets = []bucket[ExperienceSignals]{
	{100, func(e ExperienceSignals) bool { return e.EntryCount >= 3 && e.DurationMonths >= 12 }},
	{90, func(e ExperienceSignals) bool { return e.EntryCount == 2 && e.DurationMonths >= 6 }},
	{80, func(e ExperienceSignals) bool { return e.EntryCount == 1 && e.DurationMonths >= 3 }},
	{60, func(e ExperienceSignals) bool { return e.EntryCount >= 1 }},
	{40, func(e ExperienceSignals) bool { return e.HasWorkExperience }},
}

var metricsBuckets = []bucket[AchievementSignals]{
	{100, func(a AchievementSignals) bool { return a.Specific && a.Impact >= 2 && a.Count >= 4 }},
	{90, func(a AchievementSignals) bool { return a.Specific && a.Impact >= 1 && a.Count >= 3 }},
	{80, func(a AchievementSignals) bool { return a.Specific && a.Count >= 2 }},
	{70, func(a AchievementSignals) bool { return a.Specific && a.Count == 1 }},
	{50, func(a AchievementSignals) bool { return a.Count >= 1 }},
}

// coreChannels counts how many of email, phone and LinkedIn are present.
func coreChannels(c ContactSignals) int {
	n := 0
	for _, ok := range []bool{c.HasEmail, c.HasPhone, c.HasLinkedIn} {
		if ok {
			n++
		}
	}
	return n
}

// Score maps extracted signals to category scores.
func Score(s Signals) Scores {
	present, _ := s.Sections()
	return Scores{
		Structure:  pick(structureBuckets, len(present)),
		Contact:    pick(contactBuckets, s.Contact),
		Keywords:   pick(keywordBuckets, s.Skills),
		Experience: pick(experienceBuckets, s.Experience),
		Metrics:    pick(metricsBuckets, s.Achievements),
	}
}

// Overall is the weighted sum of the structure, keywords, experience and metrics scores,
// rounded half up. Contact is reported but not weighted.
func Overall(s Scores) int {
	sum := s.Structure*weightStructure + s.Keywords*weightKeywords +
		s.Experience*weightExperience + s.Metrics*weightMetrics
	return (sum + 50) / 100
}

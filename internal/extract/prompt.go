package extract

import (
	"encoding/json"
	"fmt"
)

// buildPrompt renders the extraction instructions for one page. The schema
// document is embedded verbatim so the model sees the exact contract its
// output is validated against.
func buildPrompt(pageNum, totalPages int, schemaDoc json.RawMessage) string {
	return fmt.Sprintf(`You are a professional document analysis system specializing in US academic transcript extraction.

TASK: Extract structured data from this academic transcript page (%d/%d).

INSTRUCTIONS:
1. Extract ALL visible data that matches the provided schema categories
2. Use exact values from the document - do not infer or generate data
3. For missing fields, use null values
4. Maintain high accuracy - this is for official academic record processing
5. Pay special attention to numerical values (GPA, credits, grades)
6. Preserve exact formatting of course names and institutional information

REQUIRED JSON SCHEMA:
%s

EXTRACTION RULES:
- Student Information: personal details, contact information, academic dates
- Institution Information: school details, registrar information, transcript metadata
- GPA Summary: all GPA calculations, class rankings, quality points
- Degree Information: graduation details, majors, minors, honors
- Honors/Awards: academic recognitions and achievements
- Transfer Credits: transfer institution and credit information
- Transcript Totals: cumulative credit and GPA calculations
- Academic Records: ALL course entries with complete details

QUALITY REQUIREMENTS:
- Ensure numerical accuracy for GPA and credit calculations
- Maintain exact spelling of names and course titles
- Extract complete date information (MM/DD/YYYY format preferred)
- Include all visible course-level details

Return ONLY valid JSON matching the exact schema structure. Do not include explanations or additional text.`,
		pageNum, totalPages, string(schemaDoc))
}

package llm

// Task selects which prompt template a chunk is sent with.
type Task int

const (
	// TaskExtract asks for strict JSON test results.
	TaskExtract Task = iota
	// TaskAnalyze asks for a plain-language narrative summary.
	TaskAnalyze
)

const extractPrompt = `Analyze this medical report and provide the results in JSON format. Extract all test results and patient information.

Required format:
{
    "test_groups": [
        {
            "group_name": "Test Group Name",
            "name": "Patient Name",
            "date": "Date of Test",
            "age": "Patient Age",
            "tests": [
                {
                    "test_name": "Test Name",
                    "result": "Result Value",
                    "reference_range": "Reference Range",
                    "unit": "Unit of Measurement"
                }
            ]
        }
    ]
}

Important:
1. Include all test results found in the report
2. Keep original values exactly as shown
3. Group related tests together
4. Include reference ranges and units when available
5. Maintain the exact format specified above
6. Date should be the day the sample is collected.
7. When retrieving age get only age, do not add any unnecessary text.

Parse this portion of the medical report:`

const analyzePrompt = `You are a medical assistant specialized in analyzing diagnostic health reports. I will give you the extracted text from a diagnostic report.

Your task is to:
1. Read and understand the results from tests such as blood work, imaging, and other diagnostics.
2. Summarize the findings in simple, non-technical language.
3. Identify and list:
- Pros: parameters that are within normal range or showing improvement.
- Cons: parameters that are outside the normal range or indicating a potential health concern.
4. Give suggestions for lifestyle improvements, further tests, or follow-ups if necessary - but DO NOT give any diagnosis.

Format your answer like this:

📋 Summary:
- [Brief, simple explanation of the overall health based on report]

✅ Pros:
- [Positive finding 1]
- [Positive finding 2]

❌ Cons:
- [Concern 1 with a short explanation]
- [Concern 2 with a short explanation]

📌 Suggestions:
- [Advice or follow-up if applicable]

Here is the report text:`

// BuildPrompt embeds the chunk content after the task's fixed
// instruction text.
func BuildPrompt(task Task, chunk string) string {
	switch task {
	case TaskAnalyze:
		return analyzePrompt + "\n\n" + chunk
	default:
		return extractPrompt + "\n\n" + chunk
	}
}

package eval

import "fmt"

// BuildRubricPrompt assembles the judge instruction for one question. The
// judge rates the Copilot answer against the reference on six fixed
// metrics, 0-10 each, and must reply with a single JSON object keyed by
// metric.
func BuildRubricPrompt(question, copilotAnswer, referenceAnswer string) string {
	return fmt.Sprintf(`You are evaluating the results from two different bots based on various metrics. Please provide a detailed evaluation in JSON format for each metric, bot2 is not always correct, rate it base on how effective it answers the question - out of 10:

### Question:
%s

### Copilot Result:
%s

### Bot2 Result:
%s

###### Evaluate only Copilot based on the following metrics and provide your exact output like below:
`+"```"+`
{
    "faithfulness": {
        "rating": 8,
        "reason": "Copilot accurately reflects the information provided in the source."
    },
    "factualness": {
        "rating": 7,
        "reason": "Copilot provides mostly accurate information but with minor errors."
    },
    "clarity": {
        "rating": 9,
        "reason": "Copilot presents information in a clear and understandable manner."
    },
    "relevance": {
        "rating": 6,
        "reason": "Copilot includes some irrelevant details."
    },
    "conciseness": {
        "rating": 8,
        "reason": "Copilot provides a concise summary of the information."
    },
    "overall": {
        "rating": 10,
        "reason": "Copilot delivers a great answer with room for improvement."
    }
}
`+"```"+`
Your output:
`+"```"+`
`, question, copilotAnswer, referenceAnswer)
}

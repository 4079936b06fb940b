package docs

import (
	"fmt"
	"strings"
)

// TestResults summarizes test execution for a test report.
type TestResults struct {
	Total    int
	Passed   int
	Failed   int
	Blocked  int
	Features []FeatureResult
}

// FeatureResult is one row of the per-feature results table.
type FeatureResult struct {
	Name      string
	TestCases int
	Status    string
	Notes     string
}

// TestIssue is an issue found during testing.
type TestIssue struct {
	ID             string
	Description    string
	Severity       string // Critical, High, Medium, Low
	Status         string
	Recommendation string
}

// TestCase renders a test case document for one application feature.
func TestCase(featureName, testType string, requirements []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Test Case: %s\n", featureName)
	fmt.Fprintf(&b, "## Test Type: %s\n\n", testType)

	b.WriteString("### Requirements Verified:\n")
	for _, req := range requirements {
		fmt.Fprintf(&b, "- %s\n", req)
	}

	b.WriteString(`
### Prerequisites:
- Oracle APEX application is deployed and accessible
- Test user accounts are created with appropriate permissions
- Test data is loaded in the database

### Test Environment:
- Browser: Chrome, Firefox, Safari, Edge
- Screen sizes: Desktop, Tablet, Mobile
- Oracle APEX version: 24.2

### Test Steps:
1. Login to the application as the appropriate user role
2. Navigate to the feature under test
3. Execute the feature's primary workflow
4. Verify the expected results
5. Test edge cases:
   - Empty inputs
   - Maximum length inputs
   - Special characters
   - Boundary values
6. Test error conditions:
   - Invalid inputs
   - Unauthorized access
   - Concurrent usage

### Expected Results:
- All validations function as expected
- Error messages are clear and helpful
- Performance is acceptable (response time < 2 seconds)

### Pass/Fail Criteria:
- All expected results are achieved
- No defects of severity "High" or "Critical" are found
- All requirements are verified
`)
	return b.String()
}

// TestReport renders a QA test report with execution summary, issue
// table and per-feature results.
func TestReport(applicationName string, results TestResults, issues []TestIssue) string {
	passRate := 0.0
	if results.Total > 0 {
		passRate = float64(results.Passed) / float64(results.Total) * 100
	}

	bySeverity := map[string]int{}
	for _, issue := range issues {
		bySeverity[issue.Severity]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Test Report: %s\n", applicationName)
	b.WriteString("## Testing Summary\n\n")

	b.WriteString("### Test Execution\n")
	fmt.Fprintf(&b, "- **Total Tests:** %d\n", results.Total)
	fmt.Fprintf(&b, "- **Passed:** %d (%.1f%%)\n", results.Passed, passRate)
	fmt.Fprintf(&b, "- **Failed:** %d\n", results.Failed)
	fmt.Fprintf(&b, "- **Blocked:** %d\n\n", results.Blocked)

	b.WriteString("### Issue Summary\n")
	fmt.Fprintf(&b, "- **Critical:** %d\n", bySeverity["Critical"])
	fmt.Fprintf(&b, "- **High:** %d\n", bySeverity["High"])
	fmt.Fprintf(&b, "- **Medium:** %d\n", bySeverity["Medium"])
	fmt.Fprintf(&b, "- **Low:** %d\n\n", bySeverity["Low"])

	b.WriteString(`## Testing Scope
The following areas were tested:
- Functionality
- Usability
- Performance
- Security
- Compatibility
- Data Validation

## Issues Found
`)

	if len(issues) > 0 {
		b.WriteString("\n| ID | Description | Severity | Status | Recommendation |\n")
		b.WriteString("|----|-------------|----------|--------|----------------|\n")
		for i, issue := range issues {
			id := issue.ID
			if id == "" {
				id = fmt.Sprintf("ISSUE-%d", i+1)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				id, issue.Description, issue.Severity, issue.Status, issue.Recommendation)
		}
	} else {
		b.WriteString("No issues were found during testing.\n")
	}

	b.WriteString("\n## Test Results by Feature\n\n")
	b.WriteString("| Feature | Test Cases | Status | Notes |\n")
	b.WriteString("|---------|------------|--------|-------|\n")
	for _, f := range results.Features {
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
			f.Name, f.TestCases, orDefault(f.Status, "Unknown"), f.Notes)
	}

	b.WriteString(`
## Recommendations
1. Address all Critical and High severity issues before deployment
2. Implement performance optimizations for report pages
3. Enhance error messages for better user experience
4. Conduct accessibility testing
`)
	return b.String()
}

package oracle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationScript(t *testing.T) {
	out := ApplicationScript(AppOptions{
		Name:   "Project Tracker",
		Alias:  "PROJTRACK",
		Schema: "TRACKER",
		Pages: []Page{
			{Name: "Projects", Type: "Report", SourceTable: "projects"},
			{Name: "Project Detail", Type: "Form", SourceTable: "projects"},
		},
	})

	assert.Contains(t, out, "-- Oracle APEX Application Creation Script")
	assert.Contains(t, out, "apex_application_install.set_application_alias('PROJTRACK');")
	assert.Contains(t, out, "apex_application_install.set_schema('TRACKER');")
	assert.Contains(t, out, "p_name => 'Project Tracker',")

	// Default auth scheme applies when unset.
	assert.Contains(t, out, "p_name => 'APEX_ACCESS_CONTROL',")
	assert.Contains(t, out, "p_cookie_name => 'ORA_WWV_APP_100'")

	// Global and Home pages always exist; extra pages start at 2.
	assert.Contains(t, out, "-- Create Global Page (Page 0)")
	assert.Contains(t, out, "-- Create Home (Page 1)")
	assert.Contains(t, out, "-- Create Projects (Page 2)")
	assert.Contains(t, out, "-- Create Project Detail (Page 3)")

	assert.Contains(t, out, "p_plug_source => 'SELECT * FROM projects',")
	assert.Contains(t, out, "p_plug_name => 'Project Detail Form',")
	assert.Contains(t, out, "p_button_name => 'SAVE',")

	assert.True(t, strings.HasSuffix(out, "END;\n/\n"))
}

func TestApplicationScriptNoPages(t *testing.T) {
	out := ApplicationScript(AppOptions{Name: "Empty", Alias: "EMPTY", Schema: "S"})
	assert.Contains(t, out, "-- Create Home (Page 1)")
	assert.NotContains(t, out, "(Page 2)")
	assert.NotContains(t, out, "create_page_plug")
}

func TestPageScriptForm(t *testing.T) {
	out := PageScript(PageOptions{
		AppID:       120,
		Name:        "Task Editor",
		Title:       "Edit Task",
		Type:        "Form",
		SourceTable: "tasks",
		Items: []Item{
			{Name: "P10_TITLE", Label: "Title"},
			{},
		},
	})

	assert.Contains(t, out, "-- Page: 10 - Task Editor")
	assert.Contains(t, out, "p_step_title => 'Edit Task',")
	assert.Contains(t, out, "p_flow_id => wwv_flow_api.id(120),")
	assert.Contains(t, out, "p_table_name => 'tasks',")
	assert.Contains(t, out, "p_button_name => 'SAVE',")
	assert.Contains(t, out, "p_button_name => 'CANCEL',")
	assert.Contains(t, out, "p_button_redirect_url => 'f?p=&APP_ID.:1:&SESSION.::&DEBUG.:RP:',")

	assert.Contains(t, out, "p_name => 'P10_TITLE',")
	assert.Contains(t, out, "p_prompt => 'Title',")
	// Unnamed items get positional defaults.
	assert.Contains(t, out, "p_name => 'P10_ITEM2',")
	assert.Contains(t, out, "p_prompt => 'Item 2',")
	assert.Contains(t, out, "p_item_sequence => 20,")
}

func TestPageScriptReport(t *testing.T) {
	out := PageScript(PageOptions{
		Name:        "Tasks",
		Title:       "All Tasks",
		Type:        "Report",
		SourceTable: "tasks",
	})

	// Unset app ID falls back to the placeholder.
	assert.Contains(t, out, "-- Application: 100")
	assert.Contains(t, out, "p_plug_source => 'SELECT * FROM tasks',")
	assert.Contains(t, out, "p_plug_source_type => 'NATIVE_IR',")
	assert.NotContains(t, out, "create_form_source")
}

func TestPageScriptCustomRegions(t *testing.T) {
	out := PageScript(PageOptions{
		Name:  "Dashboard",
		Title: "Dashboard",
		Regions: []Region{
			{Name: "Welcome", Source: "<p>Hello</p>"},
			{},
		},
	})

	assert.Contains(t, out, "-- Create Custom Region: Welcome")
	assert.Contains(t, out, "p_plug_source => '<p>Hello</p>',")
	assert.Contains(t, out, "p_plug_source_type => 'Static Content',")
	assert.Contains(t, out, "-- Create Custom Region: Region 2")
	assert.Contains(t, out, "p_plug_display_sequence => 30,")
	assert.Contains(t, out, "p_plug_display_sequence => 40,")
}

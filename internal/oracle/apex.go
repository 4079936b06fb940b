package oracle

import (
	"fmt"
	"strings"
)

// Default APEX internal IDs used in generated install scripts. Real
// installs remap them; the placeholders keep scripts importable into a
// workspace for review.
const (
	defaultAppID       = 100
	defaultPageID      = 10
	pageTemplateID     = "716607780903788372"
	reportTemplateID   = "716676055535817183"
	formTemplateID     = "716676747173817184"
	formSourcePluginID = "716623932180817002"
	hotButtonID        = "716679261081817186"
	closeButtonID      = "716679069077817185"
	fieldTemplateID    = "716680073818817187"
)

// Page describes a page included in an application install script.
type Page struct {
	Name        string
	Type        string // Report, Form, Standard
	SourceTable string
}

// Region is a custom region on a page.
type Region struct {
	Name   string
	Type   string // e.g. Static Content
	Source string
}

// Item is a page item.
type Item struct {
	Name  string
	Label string
	Type  string // display type, e.g. TEXT
}

// AppOptions configures ApplicationScript.
type AppOptions struct {
	Name       string
	Alias      string
	Schema     string
	AuthScheme string
	Pages      []Page
}

// ApplicationScript renders a wwv_flow_api install script that creates
// an application with a global page, a home page, and any additional
// pages. Additional pages are numbered from 2.
func ApplicationScript(opts AppOptions) string {
	if opts.AuthScheme == "" {
		opts.AuthScheme = "APEX_ACCESS_CONTROL"
	}
	appID := defaultAppID

	var b strings.Builder
	fmt.Fprintf(&b, "-- Oracle APEX Application Creation Script\n")
	fmt.Fprintf(&b, "-- Application: %s\n", opts.Name)
	fmt.Fprintf(&b, "-- Alias: %s\n", opts.Alias)
	fmt.Fprintf(&b, "-- Schema: %s\n\n", opts.Schema)

	b.WriteString("BEGIN\n")
	b.WriteString("    -- Set up application installation parameters\n")
	fmt.Fprintf(&b, "    apex_application_install.set_application_id(%d);\n", appID)
	fmt.Fprintf(&b, "    apex_application_install.set_application_alias('%s');\n", opts.Alias)
	fmt.Fprintf(&b, "    apex_application_install.set_schema('%s');\n", opts.Schema)
	fmt.Fprintf(&b, "    apex_application_install.set_application_name('%s');\n\n", opts.Name)

	b.WriteString("    -- Create the application\n")
	b.WriteString("    wwv_flow_api.create_flow(\n")
	fmt.Fprintf(&b, "        p_id => %d,\n", appID)
	fmt.Fprintf(&b, "        p_owner => '%s',\n", opts.Schema)
	fmt.Fprintf(&b, "        p_name => '%s',\n", opts.Name)
	fmt.Fprintf(&b, "        p_alias => '%s',\n", opts.Alias)
	b.WriteString("        p_page_view_logging => 'YES',\n")
	fmt.Fprintf(&b, "        p_checksum_salt => 'APEX_%d_SALT',\n", appID)
	b.WriteString("        p_max_session_length_sec => 28800\n    );\n\n")

	b.WriteString("    -- Set up authentication scheme\n")
	b.WriteString("    wwv_flow_api.create_authentication(\n")
	fmt.Fprintf(&b, "        p_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(&b, "        p_flow_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(&b, "        p_name => '%s',\n", opts.AuthScheme)
	b.WriteString("        p_scheme_type => 'NATIVE_APEX_ACCOUNTS',\n")
	b.WriteString("        p_invalid_session_type => 'LOGIN',\n")
	b.WriteString("        p_use_secure_cookie_yn => 'N',\n")
	fmt.Fprintf(&b, "        p_cookie_name => 'ORA_WWV_APP_%d'\n    );\n\n", appID)

	writePage(&b, appID, 0, "Global Page", "D")
	writePage(&b, appID, 1, "Home", "C")

	for i, page := range opts.Pages {
		pageID := i + 2
		name := page.Name
		if name == "" {
			name = fmt.Sprintf("Page %d", pageID)
		}
		writePage(&b, appID, pageID, name, "C")
		switch strings.ToLower(page.Type) {
		case "report":
			if page.SourceTable != "" {
				writeReportRegion(&b, appID, pageID, name, page.SourceTable)
			}
		case "form":
			if page.SourceTable != "" {
				writeFormRegion(&b, appID, pageID, name)
				writeSaveButton(&b, appID, pageID)
			}
		}
	}

	b.WriteString("END;\n/\n")
	return b.String()
}

// PageOptions configures PageScript.
type PageOptions struct {
	AppID       int
	Name        string
	Title       string
	Mode        string // Normal, Modal Dialog
	Type        string // Report, Form, Standard
	SourceTable string
	Regions     []Region
	Items       []Item
}

// PageScript renders a wwv_flow_api install script for a single page,
// with regions, buttons and items derived from the page type.
func PageScript(opts PageOptions) string {
	if opts.AppID == 0 {
		opts.AppID = defaultAppID
	}
	if opts.Mode == "" {
		opts.Mode = "Normal"
	}
	if opts.Type == "" {
		opts.Type = "Standard"
	}
	pageID := defaultPageID

	var b strings.Builder
	fmt.Fprintf(&b, "-- Oracle APEX Page Creation Script\n")
	fmt.Fprintf(&b, "-- Application: %d\n", opts.AppID)
	fmt.Fprintf(&b, "-- Page: %d - %s\n", pageID, opts.Name)
	fmt.Fprintf(&b, "-- Type: %s\n\n", opts.Type)

	b.WriteString("BEGIN\n")
	b.WriteString("    -- Create the page\n")
	b.WriteString("    wwv_flow_api.create_page(\n")
	fmt.Fprintf(&b, "        p_id => %d,\n", pageID)
	fmt.Fprintf(&b, "        p_flow_id => wwv_flow_api.id(%d),\n", opts.AppID)
	fmt.Fprintf(&b, "        p_page_mode => '%s',\n", opts.Mode)
	fmt.Fprintf(&b, "        p_step_title => '%s',\n", opts.Title)
	b.WriteString("        p_step_sub_title_type => 'TEXT_WITH_SUBSTITUTIONS',\n")
	b.WriteString("        p_first_item => '',\n")
	b.WriteString("        p_include_apex_css_js_yn => 'Y',\n")
	b.WriteString("        p_autocomplete_on_off => 'OFF',\n")
	fmt.Fprintf(&b, "        p_step_template => wwv_flow_api.id(%s),\n", pageTemplateID)
	b.WriteString("        p_page_is_public_y_n => 'N',\n")
	b.WriteString("        p_protection_level => 'C',\n")
	b.WriteString("        p_cache_page_yn => 'N',\n")
	b.WriteString("        p_last_upd_yyyymmddhh24miss => '20220101000000'\n    );\n")

	switch strings.ToLower(opts.Type) {
	case "report":
		if opts.SourceTable != "" {
			writeReportRegion(&b, opts.AppID, pageID, opts.Name, opts.SourceTable)
		}
	case "form":
		if opts.SourceTable != "" {
			writeFormRegion(&b, opts.AppID, pageID, opts.Name)
			writeFormSource(&b, opts.AppID, pageID, opts.SourceTable)
			writeSaveButton(&b, opts.AppID, pageID)
			writeCancelButton(&b, opts.AppID, pageID)
		}
	}

	for i, region := range opts.Regions {
		name := region.Name
		if name == "" {
			name = fmt.Sprintf("Region %d", i+1)
		}
		regionType := region.Type
		if regionType == "" {
			regionType = "Static Content"
		}
		fmt.Fprintf(&b, "\n    -- Create Custom Region: %s\n", name)
		b.WriteString("    wwv_flow_api.create_page_plug(\n")
		fmt.Fprintf(&b, "        p_id => wwv_flow_api.id(%d),\n", opts.AppID)
		fmt.Fprintf(&b, "        p_flow_id => wwv_flow_api.id(%d),\n", opts.AppID)
		fmt.Fprintf(&b, "        p_page_id => %d,\n", pageID)
		fmt.Fprintf(&b, "        p_plug_name => '%s',\n", name)
		b.WriteString("        p_region_name => '',\n")
		fmt.Fprintf(&b, "        p_plug_template => wwv_flow_api.id(%s),\n", formTemplateID)
		fmt.Fprintf(&b, "        p_plug_display_sequence => %d,\n", 20+(i+1)*10)
		b.WriteString("        p_plug_display_column => 1,\n")
		b.WriteString("        p_plug_display_point => 'BODY',\n")
		fmt.Fprintf(&b, "        p_plug_source => '%s',\n", region.Source)
		fmt.Fprintf(&b, "        p_plug_source_type => '%s',\n", regionType)
		b.WriteString("        p_plug_query_options => 'DERIVED_REPORT_COLUMNS'\n    );\n")
	}

	for i, item := range opts.Items {
		name := item.Name
		if name == "" {
			name = fmt.Sprintf("P%d_ITEM%d", pageID, i+1)
		}
		label := item.Label
		if label == "" {
			label = fmt.Sprintf("Item %d", i+1)
		}
		displayAs := item.Type
		if displayAs == "" {
			displayAs = "TEXT"
		}
		fmt.Fprintf(&b, "\n    -- Create Page Item: %s\n", name)
		b.WriteString("    wwv_flow_api.create_page_item(\n")
		fmt.Fprintf(&b, "        p_id => wwv_flow_api.id(%d),\n", opts.AppID)
		fmt.Fprintf(&b, "        p_flow_id => wwv_flow_api.id(%d),\n", opts.AppID)
		fmt.Fprintf(&b, "        p_page_id => %d,\n", pageID)
		fmt.Fprintf(&b, "        p_name => '%s',\n", name)
		b.WriteString("        p_data_type => 'VARCHAR2',\n")
		b.WriteString("        p_is_required => 'N',\n")
		b.WriteString("        p_accept_processing => 'REPLACE_EXISTING',\n")
		fmt.Fprintf(&b, "        p_item_sequence => %d,\n", (i+1)*10)
		fmt.Fprintf(&b, "        p_item_plug_id => wwv_flow_api.id(%d),\n", opts.AppID)
		b.WriteString("        p_use_cache_before_default => 'YES',\n")
		b.WriteString("        p_item_default_type => 'STATIC',\n")
		fmt.Fprintf(&b, "        p_prompt => '%s',\n", label)
		b.WriteString("        p_source => '',\n")
		b.WriteString("        p_source_type => 'STATIC',\n")
		fmt.Fprintf(&b, "        p_display_as => '%s',\n", displayAs)
		b.WriteString("        p_begin_on_new_line => 'YES',\n")
		b.WriteString("        p_label_alignment => 'RIGHT',\n")
		b.WriteString("        p_field_alignment => 'LEFT-CENTER',\n")
		fmt.Fprintf(&b, "        p_field_template => wwv_flow_api.id(%s),\n", fieldTemplateID)
		b.WriteString("        p_is_persistent => 'Y'\n    );\n")
	}

	b.WriteString("END;\n/\n")
	return b.String()
}

func writePage(b *strings.Builder, appID, pageID int, title, protection string) {
	fmt.Fprintf(b, "    -- Create %s (Page %d)\n", title, pageID)
	b.WriteString("    wwv_flow_api.create_page(\n")
	fmt.Fprintf(b, "        p_id => %d,\n", pageID)
	fmt.Fprintf(b, "        p_flow_id => wwv_flow_api.id(%d),\n", appID)
	b.WriteString("        p_page_mode => 'Normal',\n")
	fmt.Fprintf(b, "        p_step_title => '%s',\n", title)
	b.WriteString("        p_step_sub_title_type => 'TEXT_WITH_SUBSTITUTIONS',\n")
	b.WriteString("        p_first_item => '',\n")
	b.WriteString("        p_include_apex_css_js_yn => 'Y',\n")
	b.WriteString("        p_autocomplete_on_off => 'OFF',\n")
	fmt.Fprintf(b, "        p_step_template => wwv_flow_api.id(%s),\n", pageTemplateID)
	b.WriteString("        p_page_is_public_y_n => 'N',\n")
	fmt.Fprintf(b, "        p_protection_level => '%s',\n", protection)
	b.WriteString("        p_cache_page_yn => 'N',\n")
	b.WriteString("        p_last_upd_yyyymmddhh24miss => '20220101000000'\n    );\n\n")
}

func writeReportRegion(b *strings.Builder, appID, pageID int, pageName, sourceTable string) {
	fmt.Fprintf(b, "\n    -- Create Report Region on Page %d\n", pageID)
	b.WriteString("    wwv_flow_api.create_page_plug(\n")
	fmt.Fprintf(b, "        p_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(b, "        p_flow_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(b, "        p_page_id => %d,\n", pageID)
	fmt.Fprintf(b, "        p_plug_name => '%s Report',\n", pageName)
	b.WriteString("        p_region_name => '',\n")
	fmt.Fprintf(b, "        p_plug_template => wwv_flow_api.id(%s),\n", reportTemplateID)
	b.WriteString("        p_plug_display_sequence => 10,\n")
	b.WriteString("        p_plug_display_column => 1,\n")
	b.WriteString("        p_plug_display_point => 'BODY',\n")
	b.WriteString("        p_query_type => 'SQL',\n")
	fmt.Fprintf(b, "        p_plug_source => 'SELECT * FROM %s',\n", sourceTable)
	b.WriteString("        p_plug_source_type => 'NATIVE_IR',\n")
	b.WriteString("        p_plug_query_options => 'DERIVED_REPORT_COLUMNS',\n")
	b.WriteString("        p_prn_output_show_link => 'Y',\n")
	b.WriteString("        p_prn_content_disposition => 'ATTACHMENT',\n")
	fmt.Fprintf(b, "        p_prn_document_header => '%s Report',\n", pageName)
	b.WriteString("        p_prn_units => 'INCHES',\n")
	b.WriteString("        p_prn_paper_size => 'LETTER',\n")
	b.WriteString("        p_prn_width_units => 'PERCENTAGE',\n")
	b.WriteString("        p_prn_width => 11,\n")
	b.WriteString("        p_prn_height => 8.5,\n")
	b.WriteString("        p_prn_orientation => 'HORIZONTAL',\n")
	b.WriteString("        p_plug_customized => 'N'\n    );\n")
}

func writeFormRegion(b *strings.Builder, appID, pageID int, pageName string) {
	fmt.Fprintf(b, "\n    -- Create Form Region on Page %d\n", pageID)
	b.WriteString("    wwv_flow_api.create_page_plug(\n")
	fmt.Fprintf(b, "        p_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(b, "        p_flow_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(b, "        p_page_id => %d,\n", pageID)
	fmt.Fprintf(b, "        p_plug_name => '%s Form',\n", pageName)
	b.WriteString("        p_region_name => '',\n")
	fmt.Fprintf(b, "        p_plug_template => wwv_flow_api.id(%s),\n", formTemplateID)
	b.WriteString("        p_plug_display_sequence => 10,\n")
	b.WriteString("        p_plug_display_column => 1,\n")
	b.WriteString("        p_plug_display_point => 'BODY',\n")
	b.WriteString("        p_plug_query_options => 'DERIVED_REPORT_COLUMNS',\n")
	b.WriteString("        p_attribute_01 => 'N',\n")
	b.WriteString("        p_attribute_02 => 'TEXT',\n")
	b.WriteString("        p_attribute_03 => 'Y'\n    );\n")
}

func writeFormSource(b *strings.Builder, appID, pageID int, table string) {
	b.WriteString("\n    -- Create Form Source\n")
	b.WriteString("    wwv_flow_api.create_form_source(\n")
	fmt.Fprintf(b, "        p_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(b, "        p_flow_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(b, "        p_page_id => %d,\n", pageID)
	fmt.Fprintf(b, "        p_plugin_id => wwv_flow_api.id(%s),\n", formSourcePluginID)
	fmt.Fprintf(b, "        p_table_name => '%s',\n", table)
	b.WriteString("        p_primary_key => NULL,\n")
	b.WriteString("        p_unique_key => NULL,\n")
	b.WriteString("        p_insert_check => NULL,\n")
	b.WriteString("        p_update_check => NULL,\n")
	b.WriteString("        p_delete_check => NULL\n    );\n")
}

func writeSaveButton(b *strings.Builder, appID, pageID int) {
	b.WriteString("\n    -- Create Form Buttons\n")
	b.WriteString("    wwv_flow_api.create_page_button(\n")
	fmt.Fprintf(b, "        p_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(b, "        p_flow_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(b, "        p_page_id => %d,\n", pageID)
	b.WriteString("        p_button_sequence => 30,\n")
	fmt.Fprintf(b, "        p_button_plug_id => wwv_flow_api.id(%d),\n", appID)
	b.WriteString("        p_button_name => 'SAVE',\n")
	b.WriteString("        p_button_action => 'SUBMIT',\n")
	fmt.Fprintf(b, "        p_button_template_id => wwv_flow_api.id(%s),\n", hotButtonID)
	b.WriteString("        p_button_is_hot => 'Y',\n")
	b.WriteString("        p_button_image_alt => 'Save',\n")
	b.WriteString("        p_button_position => 'REGION_TEMPLATE_CREATE',\n")
	b.WriteString("        p_grid_new_row => 'Y'\n    );\n")
}

func writeCancelButton(b *strings.Builder, appID, pageID int) {
	b.WriteString("\n    wwv_flow_api.create_page_button(\n")
	fmt.Fprintf(b, "        p_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(b, "        p_flow_id => wwv_flow_api.id(%d),\n", appID)
	fmt.Fprintf(b, "        p_page_id => %d,\n", pageID)
	b.WriteString("        p_button_sequence => 10,\n")
	fmt.Fprintf(b, "        p_button_plug_id => wwv_flow_api.id(%d),\n", appID)
	b.WriteString("        p_button_name => 'CANCEL',\n")
	b.WriteString("        p_button_action => 'REDIRECT_PAGE',\n")
	fmt.Fprintf(b, "        p_button_template_id => wwv_flow_api.id(%s),\n", closeButtonID)
	b.WriteString("        p_button_image_alt => 'Cancel',\n")
	b.WriteString("        p_button_position => 'REGION_TEMPLATE_CLOSE',\n")
	b.WriteString("        p_button_redirect_url => 'f?p=&APP_ID.:1:&SESSION.::&DEBUG.:RP:',\n")
	b.WriteString("        p_grid_new_row => 'Y'\n    );\n")
}

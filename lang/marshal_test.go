package lang

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestAST_ToMap(t *testing.T) {
	input := "create Rectangle as box\n\tx = 10px\n\tfill = rgb(255, 0, 0)\n"

	ast, err := ParseString(t.Context(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	result := ast.ToMap()

	if result["create"] != "Scene" {
		t.Fatalf("expected implicit Scene root, got %v", result["create"])
	}

	body, ok := result["body"].([]any)
	if !ok {
		t.Fatalf("expected body list, got %T", result["body"])
	}

	rect, ok := body[0].(map[string]any)
	if !ok {
		t.Fatalf("expected create map, got %T", body[0])
	}

	if rect["create"] != "Rectangle" || rect["as"] != "box" {
		t.Errorf("unexpected create map: %v", rect)
	}

	rectBody := rect["body"].([]any)

	x, ok := rectBody[0].(map[string]any)
	if !ok || x["assign"] != "x" {
		t.Fatalf("expected assignment to x, got %v", rectBody[0])
	}

	unit, ok := x["value"].(map[string]any)
	if !ok {
		t.Fatalf("expected unit map, got %T", x["value"])
	}

	if unit["value"] != 10.0 || unit["unit"] != "px" {
		t.Errorf("unexpected unit map: %v", unit)
	}

	fill := rectBody[1].(map[string]any)

	call, ok := fill["value"].(map[string]any)
	if !ok || call["call"] != "rgb" {
		t.Fatalf("expected call map, got %v", fill["value"])
	}

	args := call["args"].([]any)
	if len(args) != 3 || args[0] != 255.0 {
		t.Errorf("unexpected call arguments: %v", args)
	}
}

func TestAST_ToMap_Statements(t *testing.T) {
	input := "include lib.colors\ntemplate Card inherit Rectangle\n\twidth = 10\nspeed := 2\nanchor = TextAnchor.Center\n"

	ast, err := ParseString(t.Context(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	body := ast.ToMap()["body"].([]any)

	include := body[0].(map[string]any)
	if include["include"] != "lib.colors" {
		t.Errorf("unexpected include map: %v", include)
	}

	template := body[1].(map[string]any)
	if template["template"] != "Card" || template["inherit"] != "Rectangle" {
		t.Errorf("unexpected template map: %v", template)
	}

	define := body[2].(map[string]any)
	if define["define"] != "speed" || define["value"] != 2.0 {
		t.Errorf("unexpected define map: %v", define)
	}

	anchor := body[3].(map[string]any)

	member, ok := anchor["value"].(map[string]any)
	if !ok || member["member"] != "Center" {
		t.Fatalf("expected member map, got %v", anchor["value"])
	}

	of, ok := member["of"].(map[string]any)
	if !ok || of["name"] != "TextAnchor" {
		t.Errorf("unexpected member base: %v", member["of"])
	}
}

func TestAST_ToMap_Empty(t *testing.T) {
	if result := new(AST).ToMap(); len(result) != 0 {
		t.Errorf("expected empty map for empty AST, got %v", result)
	}

	ast, err := ParseString(t.Context(), "")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	result := ast.ToMap()

	if result["create"] != "Scene" {
		t.Errorf("expected Scene root, got %v", result)
	}

	if _, ok := result["body"]; ok {
		t.Errorf("expected no body key for empty scene, got %v", result)
	}
}

func TestAST_MarshalJSON(t *testing.T) {
	input := "create Text\n\tfont = \"arial\"\n\tfont_size = 16 + 2 * 4\n"

	ast, err := ParseString(t.Context(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	jsonData, err := json.Marshal(ast)
	if err != nil {
		t.Fatalf("JSON marshal error: %v", err)
	}

	// Parse the JSON to verify structure
	var result map[string]interface{}
	if err := json.Unmarshal(jsonData, &result); err != nil {
		t.Fatalf("JSON unmarshal error: %v", err)
	}

	body := result["body"].([]interface{})
	text := body[0].(map[string]interface{})
	textBody := text["body"].([]interface{})

	font := textBody[0].(map[string]interface{})
	if font["value"] != "arial" {
		t.Errorf("expected string literal to marshal to its value, got %v", font["value"])
	}

	size := textBody[1].(map[string]interface{})

	sum, ok := size["value"].(map[string]interface{})
	if !ok || sum["op"] != "+" {
		t.Fatalf("expected sum map, got %v", size["value"])
	}

	product, ok := sum["rhs"].(map[string]interface{})
	if !ok || product["op"] != "*" {
		t.Errorf("expected product on right, got %v", sum["rhs"])
	}
}

func TestAST_MarshalJSON_Infinite(t *testing.T) {
	input := "duration = infinite\n"

	ast, err := ParseString(t.Context(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	// Infinity is not representable in JSON, so marshaling must not fail.
	jsonData, err := json.Marshal(ast)
	if err != nil {
		t.Fatalf("JSON marshal error: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(jsonData, &result); err != nil {
		t.Fatalf("JSON unmarshal error: %v", err)
	}

	body := result["body"].([]interface{})
	duration := body[0].(map[string]interface{})

	if duration["value"] != "infinite" {
		t.Errorf("expected infinite to marshal as its literal word, got %v", duration["value"])
	}
}

func TestAST_MarshalYAML(t *testing.T) {
	input := "create Rectangle\n\twidth = 50%\n"

	ast, err := ParseString(t.Context(), input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	yamlData, err := yaml.Marshal(ast.ToMap())
	if err != nil {
		t.Fatalf("YAML marshal error: %v", err)
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(yamlData, &result); err != nil {
		t.Fatalf("YAML unmarshal error: %v", err)
	}

	if result["create"] != "Scene" {
		t.Errorf("expected Scene root, got %v", result["create"])
	}

	// Verify YAML structure
	yamlStr := string(yamlData)
	if !strings.Contains(yamlStr, "create:") {
		t.Errorf("YAML should contain 'create:' but got: %s", yamlStr)
	}

	if !strings.Contains(yamlStr, "unit: '%'") && !strings.Contains(yamlStr, "unit: \"%\"") && !strings.Contains(yamlStr, "unit: %") {
		t.Errorf("YAML should contain the unit but got: %s", yamlStr)
	}
}

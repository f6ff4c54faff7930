package vak

import (
	"strings"
	"testing"
)

func TestBuildPrompt_StylesAreDistinct(t *testing.T) {
	visual := BuildPrompt(StyleVisual, "fotosíntesis")
	auditory := BuildPrompt(StyleAuditory, "fotosíntesis")
	kinesthetic := BuildPrompt(StyleKinesthetic, "fotosíntesis")

	if visual == auditory || visual == kinesthetic || auditory == kinesthetic {
		t.Fatal("each style must produce a distinct prompt")
	}

	if !strings.Contains(visual, "DIAGRAMAS/INFOGRAFÍAS") {
		t.Error("visual prompt missing its reference-diversity instruction")
	}
	if !strings.Contains(auditory, "Podcasts") {
		t.Error("auditory prompt missing its audio reference instruction")
	}
	if !strings.Contains(kinesthetic, "SIMULACIONES INTERACTIVAS") {
		t.Error("kinesthetic prompt missing its interactive reference instruction")
	}
}

func TestBuildPrompt_UnknownStyleFallsBackToStandard(t *testing.T) {
	unknown := BuildPrompt("ReadingWriting", "álgebra lineal")
	expected := BuildPrompt("ReadingWriting", "álgebra lineal")

	// Deterministic for the same inputs.
	if unknown != expected {
		t.Fatal("BuildPrompt must be deterministic")
	}
	if !strings.Contains(unknown, standardAdaptation) {
		t.Error("unrecognized style must use the standard adaptation")
	}
	if !strings.Contains(unknown, standardReferences) {
		t.Error("unrecognized style must use the generic academic references")
	}
}

func TestBuildPrompt_InvariantCitationRules(t *testing.T) {
	for _, style := range []string{StyleVisual, StyleAuditory, StyleKinesthetic, "otro"} {
		prompt := BuildPrompt(style, "tema")
		if !strings.Contains(prompt, "Referencias Bibliográficas") {
			t.Errorf("style %q: prompt must demand the references section", style)
		}
		if !strings.Contains(prompt, "No inventes URLs") {
			t.Errorf("style %q: prompt must forbid fabricated links", style)
		}
		if !strings.Contains(prompt, "tema") {
			t.Errorf("style %q: prompt must embed the topic", style)
		}
	}
}

func TestNormalizeStyle(t *testing.T) {
	if got := NormalizeStyle(""); got != StyleVisual {
		t.Errorf("empty label should default to Visual, got %q", got)
	}
	if got := NormalizeStyle(StyleAuditory); got != StyleAuditory {
		t.Errorf("valid label must pass through, got %q", got)
	}
	if got := NormalizeStyle("Mixed"); got != "Mixed" {
		t.Errorf("unknown non-empty label must pass through, got %q", got)
	}
}

func TestBuildQuizPrompt(t *testing.T) {
	prompt := BuildQuizPrompt("ecuaciones cuadráticas", 2, StyleVisual)
	for _, want := range []string{"ecuaciones cuadráticas", "2/3", "Visual", "JSON"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("quiz prompt missing %q", want)
		}
	}
}

func TestBuildTranslationPrompt(t *testing.T) {
	prompt := BuildTranslationPrompt("me gusta aprender viendo diagramas")
	if !strings.Contains(prompt, "me gusta aprender viendo diagramas") {
		t.Error("translation prompt must embed the source phrase")
	}
	if !strings.Contains(prompt, "SÓLO el texto traducido") {
		t.Error("translation prompt must demand bare output")
	}
}

package protocol_test

import (
	"errors"
	"strings"
	"testing"

	"gazecheck/internal/protocol"
	"gazecheck/internal/stimulus"
)

const testCatalog = "stimulus_id\tstimulus_name\tstimulus_type\tnum_pages\tquestion_ids\trating_screens\n" +
	"13\tEnc_WikiMoon\tpractice\t2\t\t\n" +
	"7\tLit_NorthWind\tpractice\t1\t\t\n" +
	"5\tLit_Solaris\texperiment\t2\t01;02\t\n" +
	"4\tArg_PISACowsMilk\texperiment\t1\t010\t\n"

func testBuilder(t *testing.T) *protocol.Builder {
	t.Helper()
	catalog, err := stimulus.ReadCatalog(strings.NewReader(testCatalog))
	if err != nil {
		t.Fatalf("read catalog: %v", err)
	}
	return protocol.NewBuilder(catalog)
}

func TestBuildOrdersPracticeFirst(t *testing.T) {
	// Ledger interleaves practice and experiment stimuli on purpose.
	template, err := testBuilder(t).Build([]int{5, 13, 4, 7})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if len(template.Trials) != 4 {
		t.Fatalf("expected 4 trials, got %d", len(template.Trials))
	}
	if template.PracticeTrials() != 2 || template.ExperimentTrials() != 2 {
		t.Fatalf("unexpected trial split: %d practice, %d experiment",
			template.PracticeTrials(), template.ExperimentTrials())
	}

	// Practice trials first, preserving ledger order within each block,
	// numbered independently per block.
	wantIDs := []int{13, 7, 5, 4}
	wantNumbers := []int{1, 2, 1, 2}
	for i, trial := range template.Trials {
		if trial.Stimulus.ID != wantIDs[i] {
			t.Fatalf("trial %d stimulus = %d, want %d", i, trial.Stimulus.ID, wantIDs[i])
		}
		if trial.Number != wantNumbers[i] {
			t.Fatalf("trial %d number = %d, want %d", i, trial.Number, wantNumbers[i])
		}
	}
	if !template.Trials[0].Practice || template.Trials[2].Practice {
		t.Fatal("practice flags are wrong")
	}
}

func TestBuildTrialElements(t *testing.T) {
	template, err := testBuilder(t).Build([]int{13, 7, 5})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	solaris := template.Trials[2]
	if solaris.AnchorPattern() != "start_recording_trial_1_stimulus_Lit_Solaris_5_page_1" {
		t.Fatalf("unexpected anchor: %s", solaris.AnchorPattern())
	}

	var kinds []protocol.Kind
	for _, el := range solaris.Elements {
		kinds = append(kinds, el.Kind)
	}
	want := []protocol.Kind{
		protocol.KindRating, protocol.KindRating, protocol.KindRating,
		protocol.KindPage, protocol.KindPage,
		protocol.KindQuestion, protocol.KindQuestion,
		protocol.KindValidation,
	}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d elements, got %d (%v)", len(want), len(kinds), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("element %d kind = %s, want %s", i, kinds[i], want[i])
		}
	}

	page2 := solaris.Elements[4]
	wantSubEvents := []string{
		"start_recording_trial_1_stimulus_Lit_Solaris_5_page_2",
		"page_screen_image_onset",
		"page_screen_image_offset",
		"stop_recording_trial_1_stimulus_Lit_Solaris_5_page_2",
	}
	for i, pattern := range wantSubEvents {
		if page2.SubEvents[i] != pattern {
			t.Fatalf("page_2 sub-event %d = %q, want %q", i, page2.SubEvents[i], pattern)
		}
	}

	question1 := solaris.Elements[5]
	if question1.QuestionID != "1" {
		t.Fatalf("leading zero should be stripped, got %q", question1.QuestionID)
	}
	if question1.SubEvents[0] != "start_recording_trial_1_stimulus_Lit_Solaris_5_question_1" {
		t.Fatalf("unexpected question start marker: %s", question1.SubEvents[0])
	}
}

func TestBuildPracticeMarkers(t *testing.T) {
	template, err := testBuilder(t).Build([]int{13})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	anchor := template.Trials[0].AnchorPattern()
	if anchor != "start_recording_PRACTICE_trial_1_stimulus_Enc_WikiMoon_13_page_1" {
		t.Fatalf("unexpected practice anchor: %s", anchor)
	}
}

func TestBuildOneTimeScreens(t *testing.T) {
	template, err := testBuilder(t).Build([]int{13})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(template.OneTime) != len(protocol.OneTimeScreens) {
		t.Fatalf("expected %d one-time screens, got %d", len(protocol.OneTimeScreens), len(template.OneTime))
	}
	if template.OneTime[0].Name != "welcome_screen" {
		t.Fatalf("unexpected first one-time screen: %s", template.OneTime[0].Name)
	}
}

func TestBuildUnknownStimulus(t *testing.T) {
	_, err := testBuilder(t).Build([]int{13, 99})
	if !errors.Is(err, stimulus.ErrUnknownStimulus) {
		t.Fatalf("expected ErrUnknownStimulus, got %v", err)
	}
}

func TestNormalizeQuestionID(t *testing.T) {
	cases := map[string]string{
		"01":  "1",
		"010": "10",
		"10":  "10",
		"000": "0",
		"":    "",
	}
	for in, want := range cases {
		if got := protocol.NormalizeQuestionID(in); got != want {
			t.Fatalf("NormalizeQuestionID(%q) = %q, want %q", in, got, want)
		}
	}
}

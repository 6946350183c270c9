package usecase

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"go.uber.org/zap"

	campaignin "chronicle/internal/modules/campaign/port/in"
	characterin "chronicle/internal/modules/character/port/in"
	narrativedto "chronicle/internal/modules/narrative/dto"
	narrativein "chronicle/internal/modules/narrative/port/in"
	"chronicle/internal/modules/session/domain"
	"chronicle/internal/modules/session/dto"
	sessionin "chronicle/internal/modules/session/port/in"
	sessionout "chronicle/internal/modules/session/port/out"
	"chronicle/internal/modules/session/service"
	"chronicle/internal/platform/clock"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/logging"
)

type Interactor struct {
	svc        *service.SessionService
	campaigns  campaignin.Usecase
	characters characterin.Usecase
	narrative  narrativein.Usecase
	exporter   sessionout.TimelineExporter
	clock      clock.Clock
	log        *zap.Logger
}

type Deps struct {
	Campaigns  campaignin.Usecase
	Characters characterin.Usecase
	Narrative  narrativein.Usecase
	Exporter   sessionout.TimelineExporter
	Clock      clock.Clock
	Logger     *zap.Logger
}

func NewInteractor(svc *service.SessionService, deps Deps) sessionin.Usecase {
	clk := deps.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{
		svc:        svc,
		campaigns:  deps.Campaigns,
		characters: deps.Characters,
		narrative:  deps.Narrative,
		exporter:   deps.Exporter,
		clock:      clk,
		log:        logging.OrNop(deps.Logger),
	}
}

func (i *Interactor) List(ctx context.Context) ([]dto.SessionOutput, error) {
	list, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(list))
	for _, s := range list {
		out = append(out, toOutput(s))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.SessionOutput, error) {
	s, err := i.find(ctx, id)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(s), nil
}

// Create stores the record as given. A missing date means today.
func (i *Interactor) Create(ctx context.Context, input dto.SessionInput) (dto.SessionOutput, error) {
	s := fromInput(input)
	if s.Date == "" {
		s.Date = clock.Today(i.clock)
	}
	created, err := i.svc.Create(ctx, s)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(created), nil
}

// Update replaces the stored record. Cached translations survive only when
// the story is unchanged.
func (i *Interactor) Update(ctx context.Context, input dto.SessionInput) (dto.UpdateOutput, error) {
	if input.ID == "" {
		return dto.UpdateOutput{}, apperrors.Invalid("id", "cannot be blank")
	}
	updated, ok, err := i.svc.Update(ctx, fromInput(input))
	if err != nil || !ok {
		return dto.UpdateOutput{}, err
	}
	return dto.UpdateOutput{Session: toOutput(updated), Updated: true}, nil
}

func (i *Interactor) Delete(ctx context.Context, id string) (bool, error) {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) SetTranslation(ctx context.Context, input dto.SetTranslationInput) (dto.SetTranslationOutput, error) {
	if err := apperrors.FromValidation(input.Validate()); err != nil {
		return dto.SetTranslationOutput{}, err
	}
	result, err := i.svc.SetTranslation(ctx, input.ID, input.Language, input.Text)
	if err != nil {
		return dto.SetTranslationOutput{}, err
	}
	return dto.SetTranslationOutput{Result: string(result)}, nil
}

// Chronicle turns raw notes into a new session. The session is saved even
// when generation degrades; the story then holds the fallback text and no
// image is attached.
func (i *Interactor) Chronicle(ctx context.Context, input dto.ChronicleInput) (dto.ChronicleOutput, error) {
	input = input.Normalize()
	if err := apperrors.FromValidation(input.Validate()); err != nil {
		return dto.ChronicleOutput{}, err
	}
	scope := i.svc.Scope()
	active, err := i.campaigns.Active(ctx)
	if err != nil {
		return dto.ChronicleOutput{}, err
	}
	ws, err := i.campaigns.Workspace(ctx)
	if err != nil {
		return dto.ChronicleOutput{}, err
	}
	style := narrativedto.Style{ImageStyle: active.ImageStyle, AIInstructions: active.AIInstructions}

	story := i.narrative.Narrate(ctx, narrativedto.NarrateInput{Notes: input.RawNotes, Style: style, Language: ws.Language})
	out := dto.ChronicleOutput{StoryStatus: story.Status, Reason: story.Reason}

	var image narrativedto.ImageOutput
	if input.WithImage && story.OK() {
		image, err = i.scene(ctx, story.Text, input.CharactersInvolved, style)
		if err != nil {
			return dto.ChronicleOutput{}, err
		}
		out.ImageStatus = image.Status
		if out.Reason == "" {
			out.Reason = image.Reason
		}
	}

	date := input.Date
	if date == "" {
		date = clock.Today(i.clock)
	}
	s := domain.Session{
		Date:               date,
		Title:              input.Title,
		RawNotes:           input.RawNotes,
		Story:              story.Text,
		CharactersInvolved: input.CharactersInvolved,
	}
	if image.OK() {
		s.ImageURL = image.Handle
	}

	if scope != i.svc.Scope() {
		if _, err := i.campaigns.Get(ctx, scope); errors.Is(err, apperrors.ErrNotFound) {
			i.log.Info("chronicle discarded, campaign deleted", zap.String("campaign_id", scope))
			out.Session = toOutput(s)
			return out, nil
		} else if err != nil {
			return dto.ChronicleOutput{}, err
		}
	}
	created, err := i.svc.CreateIn(ctx, scope, s)
	if err != nil {
		return dto.ChronicleOutput{}, err
	}
	out.Session = toOutput(created)
	out.Saved = true
	return out, nil
}

// Regenerate writes a fresh story from the stored notes. Only a successful
// generation replaces the story, which also drops cached translations.
func (i *Interactor) Regenerate(ctx context.Context, id string) (dto.ChronicleOutput, error) {
	scope := i.svc.Scope()
	s, err := i.find(ctx, id)
	if err != nil {
		return dto.ChronicleOutput{}, err
	}
	active, err := i.campaigns.Active(ctx)
	if err != nil {
		return dto.ChronicleOutput{}, err
	}
	ws, err := i.campaigns.Workspace(ctx)
	if err != nil {
		return dto.ChronicleOutput{}, err
	}
	style := narrativedto.Style{ImageStyle: active.ImageStyle, AIInstructions: active.AIInstructions}

	story := i.narrative.Narrate(ctx, narrativedto.NarrateInput{Notes: s.RawNotes, Style: style, Language: ws.Language})
	out := dto.ChronicleOutput{Session: toOutput(s), StoryStatus: story.Status, Reason: story.Reason}
	if !story.OK() {
		return out, nil
	}
	updated, saved, err := i.svc.Mutate(ctx, scope, id, func(target *domain.Session) { target.Story = story.Text })
	if err != nil {
		return dto.ChronicleOutput{}, err
	}
	if saved {
		out.Session = toOutput(updated)
		out.Saved = true
	}
	return out, nil
}

// Translate fills the translation cache for one language, defaulting to the
// workspace language. The model is asked at most once per language for a
// given story; a degraded answer is shown but not cached.
func (i *Interactor) Translate(ctx context.Context, input dto.TranslateInput) (dto.TranslateOutput, error) {
	lang := input.Language
	if lang == "" {
		ws, err := i.campaigns.Workspace(ctx)
		if err != nil {
			return dto.TranslateOutput{}, err
		}
		lang = ws.Language
	}
	if !lang.Valid() {
		return dto.TranslateOutput{}, apperrors.Invalid("language", fmt.Sprintf("unsupported language %q", lang))
	}

	scope := i.svc.Scope()
	s, err := i.find(ctx, input.ID)
	if err != nil {
		return dto.TranslateOutput{}, err
	}
	if s.Story == "" {
		return dto.TranslateOutput{Status: dto.TranslationSkipped}, nil
	}
	if text, ok := s.Translation(lang); ok {
		return dto.TranslateOutput{Text: text, Status: dto.TranslationCached}, nil
	}

	res := i.narrative.Translate(ctx, narrativedto.TranslateInput{Text: s.Story, Target: lang})
	if !res.OK() {
		i.log.Info("translation not cached", zap.String("session_id", s.ID), zap.String("language", string(lang)), zap.String("reason", res.Reason))
		return dto.TranslateOutput{Text: s.Story, Status: dto.TranslationDegraded, Reason: res.Reason}, nil
	}

	source := s.Story
	result, cached, err := i.svc.SetTranslationFor(ctx, scope, s.ID, lang, res.Text, &source)
	if err != nil {
		return dto.TranslateOutput{}, err
	}
	switch result {
	case domain.TranslationStored:
		return dto.TranslateOutput{Text: res.Text, Status: dto.TranslationStored}, nil
	case domain.TranslationUnchanged:
		return dto.TranslateOutput{Text: cached, Status: dto.TranslationCached}, nil
	default:
		i.log.Info("translation discarded", zap.String("session_id", s.ID), zap.String("result", string(result)))
		return dto.TranslateOutput{Text: res.Text, Status: dto.TranslationDiscarded}, nil
	}
}

// ResolveCharacters splits the session's cast into known characters and ids
// that no longer resolve.
func (i *Interactor) ResolveCharacters(ctx context.Context, id string) (dto.CastOutput, error) {
	s, err := i.find(ctx, id)
	if err != nil {
		return dto.CastOutput{}, err
	}
	res, err := i.characters.Resolve(ctx, s.CharactersInvolved)
	if err != nil {
		return dto.CastOutput{}, err
	}
	return dto.CastOutput{Known: res.Known, Unknown: res.Unknown}, nil
}

func (i *Interactor) View(ctx context.Context, input dto.ViewInput) (dto.ViewOutput, error) {
	mode, ok := domain.ParseViewMode(input.Mode)
	if !ok {
		return dto.ViewOutput{}, apperrors.Invalid("mode", fmt.Sprintf("unknown view mode %q", input.Mode))
	}
	s, err := i.find(ctx, input.ID)
	if err != nil {
		return dto.ViewOutput{}, err
	}
	ws, err := i.campaigns.Workspace(ctx)
	if err != nil {
		return dto.ViewOutput{}, err
	}
	text, translated := domain.Display(s, ws.Language, mode)
	_, cached := s.Translation(ws.Language)
	return dto.ViewOutput{
		Session:      toOutput(s),
		Text:         text,
		Language:     ws.Language,
		Translated:   translated,
		CanTranslate: s.Story != "" && !cached,
	}, nil
}

// Export writes the active campaign's timeline and roster below dir.
func (i *Interactor) Export(ctx context.Context, dir string) (dto.ExportOutput, error) {
	if i.exporter == nil {
		return dto.ExportOutput{}, fmt.Errorf("export timeline: %w", apperrors.ErrPrecondition)
	}
	active, err := i.campaigns.Active(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	sessions, err := i.svc.List(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	snapshot := domain.Snapshot{
		CampaignID:   active.ID,
		CampaignName: active.Name,
		Description:  active.Description,
		Sessions:     sessions,
	}
	if i.characters != nil {
		roster, err := i.characters.List(ctx)
		if err != nil {
			return dto.ExportOutput{}, err
		}
		for _, c := range roster {
			snapshot.Roster = append(snapshot.Roster, domain.RosterEntry{ID: c.ID, Name: c.Name, Race: c.Race, Class: c.Class, Description: c.Description})
		}
	}
	files, err := i.exporter.Export(ctx, dir, snapshot)
	if err != nil {
		return dto.ExportOutput{Files: files}, fmt.Errorf("export timeline: %w", err)
	}
	i.log.Info("timeline exported", zap.String("campaign_id", active.ID), zap.Int("files", len(files)))
	return dto.ExportOutput{Files: files}, nil
}

func (i *Interactor) scene(ctx context.Context, story string, cast []string, style narrativedto.Style) (narrativedto.ImageOutput, error) {
	in := narrativedto.SceneInput{Story: story, Style: style}
	if i.characters != nil && len(cast) > 0 {
		res, err := i.characters.Resolve(ctx, cast)
		if err != nil {
			return narrativedto.ImageOutput{}, err
		}
		for _, c := range res.Known {
			in.Figures = append(in.Figures, c.Figure())
		}
	}
	return i.narrative.Scene(ctx, in), nil
}

func (i *Interactor) find(ctx context.Context, id string) (domain.Session, error) {
	s, ok, err := i.svc.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if !ok {
		return domain.Session{}, fmt.Errorf("session %s: %w", id, apperrors.ErrNotFound)
	}
	return s, nil
}

func fromInput(in dto.SessionInput) domain.Session {
	return domain.Session{
		ID:                 in.ID,
		Date:               in.Date,
		Title:              in.Title,
		RawNotes:           in.RawNotes,
		Story:              in.Story,
		ImageURL:           in.ImageURL,
		CharactersInvolved: in.CharactersInvolved,
	}
}

func toOutput(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:                 s.ID,
		Date:               s.Date,
		Title:              s.Title,
		RawNotes:           s.RawNotes,
		Story:              s.Story,
		Translations:       maps.Clone(s.Translations),
		ImageURL:           s.ImageURL,
		CharactersInvolved: append([]string{}, s.CharactersInvolved...),
	}
}

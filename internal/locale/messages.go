package locale

// Key identifies a user-visible message
type Key string

const (
	DemoNotice           Key = "demo_notice"
	NotFound             Key = "not_found"
	GenericFailure       Key = "generic_failure"
	ValidationFailed     Key = "validation_failed"
	UploadFailed         Key = "upload_failed"
	CreateFailed         Key = "create_failed"
	InternalSearchFailed Key = "internal_search_failed"
	WebSearchFailed      Key = "web_search_failed"
	InvalidPasscode      Key = "invalid_passcode"
	ArticleCreated       Key = "article_created"
	ArticleDeleted       Key = "article_deleted"
	DeleteFailed         Key = "delete_failed"
	ConfirmDelete        Key = "confirm_delete"
	LoadFailed           Key = "load_failed"
	MalformedForm        Key = "malformed_form"
)

var catalog = map[string]map[Key]string{
	LanguageEnglish: {
		DemoNotice:           "Demo Mode: Showing sample articles. Create the articles table to see real content.",
		NotFound:             "Article not found",
		GenericFailure:       "Something went wrong. Please try again.",
		ValidationFailed:     "Please fill in all required fields",
		UploadFailed:         "Failed to upload image",
		CreateFailed:         "Failed to create article",
		InternalSearchFailed: "Failed to fetch internal articles",
		WebSearchFailed:      "Failed to fetch web search results",
		InvalidPasscode:      "Invalid passcode. Please try again.",
		ArticleCreated:       "Article created successfully!",
		ArticleDeleted:       "Article deleted successfully",
		DeleteFailed:         "Failed to delete article",
		ConfirmDelete:        "Are you sure you want to delete this article?",
		LoadFailed:           "Failed to fetch articles",
		MalformedForm:        "The form could not be read. Please check the values and try again.",
	},
	LanguageKorean: {
		DemoNotice:           "데모 모드: 샘플 기사를 표시하고 있습니다. 실제 콘텐츠를 보려면 articles 테이블을 생성하세요.",
		NotFound:             "기사를 찾을 수 없습니다",
		GenericFailure:       "문제가 발생했습니다. 다시 시도해 주세요.",
		ValidationFailed:     "필수 항목을 모두 입력해 주세요",
		UploadFailed:         "이미지 업로드에 실패했습니다",
		CreateFailed:         "기사 작성에 실패했습니다",
		InternalSearchFailed: "내부 기사를 가져오지 못했습니다",
		WebSearchFailed:      "웹 검색 결과를 가져오지 못했습니다",
		InvalidPasscode:      "잘못된 비밀번호입니다. 다시 시도해 주세요.",
		ArticleCreated:       "기사가 성공적으로 작성되었습니다!",
		ArticleDeleted:       "기사가 삭제되었습니다",
		DeleteFailed:         "기사 삭제에 실패했습니다",
		ConfirmDelete:        "이 기사를 삭제하시겠습니까?",
		LoadFailed:           "기사를 불러오지 못했습니다",
		MalformedForm:        "양식을 읽을 수 없습니다. 입력값을 확인한 후 다시 시도하세요.",
	},
}

// T returns the message for key in lang, falling back to English
func T(lang string, key Key) string {
	if msgs, ok := catalog[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	return catalog[LanguageEnglish][key]
}

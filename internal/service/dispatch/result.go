package dispatch

// resultKind вид результата обработчика
type resultKind int

const (
	kindNoReply resultKind = iota
	kindTextReply
	kindOpaqueResult
)

// Result результат работы обработчика обновления
// Явный tagged-вариант вместо проверки типа значения во время выполнения:
// классификация в диспетчере получается исчерпывающей
type Result struct {
	kind  resultKind
	text  string
	value interface{}
}

// NoReply обработчик не хочет отвечать
func NoReply() Result {
	return Result{kind: kindNoReply}
}

// TextReply обработчик просит отправить текстовый ответ в чат обновления
func TextReply(text string) Result {
	return Result{kind: kindTextReply, text: text}
}

// OpaqueResult обработчик уже выполнил собственный эффект или собрал
// собственный ответ; автоответ не отправляется
func OpaqueResult(value interface{}) Result {
	return Result{kind: kindOpaqueResult, value: value}
}

// Value возвращает значение, переданное в OpaqueResult
func (r Result) Value() interface{} {
	return r.value
}

package templates

// WelcomeMessageText приветственное сообщение при команде /start
const WelcomeMessageText = `Добро пожаловать!

Бот принимает команды в этом чате и отвечает на них автоматически.
Отправьте сообщение, чтобы начать работу.`

package catalog

// catalog is the fixed daily checklist. Finance and clinical assistant
// lists have not been written yet.
var catalog = []Task{
	{ID: "at-1", Role: FrontDesk, Category: "Abertura", Text: "Bater o ponto."},
	{ID: "at-2", Role: FrontDesk, Category: "Abertura", Text: "Ligar luzes do consultório, ar condicionado da recepção (22º graus), café na máquina, TVs da recepção e brinquedoteca, trocar água do café da brinquedoteca."},
	{ID: "at-3", Role: FrontDesk, Category: "Abertura", Text: "Conferir limpeza e organização da recepção geral, brinquedoteca e banheiros."},
	{ID: "at-4", Role: FrontDesk, Category: "Abertura", Text: "Atualizar e carregar maquininhas de cartão."},
	{ID: "at-5", Role: FrontDesk, Category: "Abertura", Text: "Responder todos os pacientes que entraram em contato fora do expediente."},
	{ID: "at-6", Role: FrontDesk, Category: "Abertura", Text: "Priorizar mensagens de pacientes com agendamento para o dia."},
	{ID: "at-7", Role: FrontDesk, Category: "Abertura", Text: "Mandar mensagem de aniversário."},
	{ID: "at-8", Role: FrontDesk, Category: "Agendamentos", Text: "Verificar se todos os pacientes confirmaram as consultas pelo sistema. Caso contrário, entrar em contato."},
	{ID: "at-9", Role: FrontDesk, Category: "Agendamentos", Text: "Confirmar com todos os pacientes agendados (mensagem ou ligação) e marcar status no sistema."},
	{ID: "at-10", Role: FrontDesk, Category: "Agendamentos", Text: "Informar pacientes sem retorno que a consulta está sendo desmarcada por falta de comunicação."},
	{ID: "at-11", Role: FrontDesk, Category: "Almoço", Text: "Bater ponto na saída e entrada do almoço."},
	{ID: "at-12", Role: FrontDesk, Category: "Almoço", Text: "Desligar ar condicionado do consultório da Elisama, brinquedoteca, sala da Thays e da recepção geral."},
	{ID: "at-13", Role: FrontDesk, Category: "Atendimento", Text: "Manter conectada com as mensagens dos pacientes durante todo o dia."},
	{ID: "at-14", Role: FrontDesk, Category: "Atendimento", Text: "Recepcionar os pacientes com cordialidade e acolhimento."},
	{ID: "at-15", Role: FrontDesk, Category: "Atendimento", Text: "Concluir cadastro do paciente e do representante no sistema."},
	{ID: "at-16", Role: FrontDesk, Category: "Atendimento", Text: "Coletar anamnese e autorização de imagem, encaminhar para a Bianca e escanear/anexar após a consulta."},
	{ID: "at-17", Role: FrontDesk, Category: "Atendimento", Text: "Levar o paciente até a recepção, oferecer café/água e avisar a equipe da chegada."},
	{ID: "at-18", Role: FrontDesk, Category: "Atendimento", Text: "Pós-consulta: perguntar se foi tudo bem e solicitar avaliação no Google via link."},
	{ID: "at-19", Role: FrontDesk, Category: "Atendimento", Text: "Caso necessário, mandar orientações de pós-consulta."},
	{ID: "at-20", Role: FrontDesk, Category: "Atendimento", Text: "Marcar ou remanejar horários de pacientes conforme necessário."},
	{ID: "at-21", Role: FrontDesk, Category: "Atendimento", Text: "Manter cordialidade e acolhimento em todas as mensagens (usar scripts de referência)."},
	{ID: "at-22", Role: FrontDesk, Category: "Redes Sociais", Text: "Responder comentários e mensagens com cordialidade e acolhimento."},
	{ID: "at-23", Role: FrontDesk, Category: "Redes Sociais", Text: "Estimular engajamento com os seguidores."},
	{ID: "at-24", Role: FrontDesk, Category: "Redes Sociais", Text: "Tirar dúvidas de procedimentos com profissionais antes de responder redes sociais/WhatsApp."},
	{ID: "at-25", Role: FrontDesk, Category: "Fechamento", Text: "Relatório para a Dra. sobre pacientes que não responderam ou não foram localizados."},
	{ID: "at-26", Role: FrontDesk, Category: "Fechamento", Text: "Checar confirmações e alterações da agenda do dia seguinte."},
	{ID: "at-27", Role: FrontDesk, Category: "Fechamento", Text: "Caso haja sedação amanhã: pedir salgadinho, refrigerante e flor."},
	{ID: "at-28", Role: FrontDesk, Category: "Fechamento", Text: "Desligar todas as luzes, TVs e ares-condicionados."},
	{ID: "at-29", Role: FrontDesk, Category: "Fechamento", Text: "Colocar maquininhas de cartão e tablets para carregar."},
	{ID: "at-30", Role: FrontDesk, Category: "Fechamento", Text: "Organizar recepção e materiais."},
	{ID: "at-31", Role: FrontDesk, Category: "Fechamento", Text: "Recolher tapete."},
	{ID: "at-32", Role: FrontDesk, Category: "Fechamento", Text: "Apagar luzes internas (deixar apenas a externa acesa)."},
	{ID: "at-33", Role: FrontDesk, Category: "Fechamento", Text: "Ligar alarme e trancar as duas portas."},
}

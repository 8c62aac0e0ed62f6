/*
Package rabbitmq provides a RabbitMQ adapter for the message catalog.
It maps sends and appends to AMQP topic exchanges, includes an auto-reconnect publisher,
and supports optional header propagation via a message.HeaderPropagator.
*/
package rabbitmq
